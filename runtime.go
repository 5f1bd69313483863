package lantern

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Runtime is the external script engine on the far side of the bridge.
// The pipeline depends only on this boundary: lines in, interaction events
// out. Implementations can be real, sandboxed, or test doubles.
type Runtime interface {
	// Events returns the inbound protocol line channel. The bridge drains
	// it without blocking once per tick.
	Events() <-chan string
	// Dispatch delivers an interaction result back to the runtime.
	Dispatch(ev OutboundEvent)
}

// StdioRuntime adapts a line-oriented reader (normally stdin) to the Runtime
// interface and prints dispatched events to a writer (normally stdout). This
// is the process-pipe transport the protocol was designed around.
type StdioRuntime struct {
	lines chan string
	out   io.Writer
}

// NewStdioRuntime creates a runtime reading protocol lines from stdin and
// writing interaction events to stdout.
func NewStdioRuntime() *StdioRuntime {
	return NewReaderRuntime(os.Stdin, os.Stdout)
}

// NewReaderRuntime creates a runtime reading protocol lines from r and
// writing interaction events to w. The reader goroutine exits when r is
// exhausted.
func NewReaderRuntime(r io.Reader, w io.Writer) *StdioRuntime {
	rt := &StdioRuntime{
		lines: make(chan string, 256),
		out:   w,
	}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			rt.lines <- scanner.Text()
		}
		close(rt.lines)
	}()
	return rt
}

// Events returns the inbound line channel.
func (rt *StdioRuntime) Events() <-chan string {
	return rt.lines
}

// Dispatch writes the event as a single "[Event] <id> <name>" line.
func (rt *StdioRuntime) Dispatch(ev OutboundEvent) {
	_, _ = fmt.Fprintf(rt.out, "[Event] %s %s\n", ev.ID, ev.Name)
}

// MockRuntime is an in-memory Runtime for tests and scripted runs. Lines are
// queued with Send; dispatched events are recorded in Dispatched.
type MockRuntime struct {
	lines      chan string
	Dispatched []OutboundEvent
}

// NewMockRuntime creates a mock runtime with room for cap pending lines.
func NewMockRuntime(cap int) *MockRuntime {
	if cap < 1 {
		cap = 1
	}
	return &MockRuntime{lines: make(chan string, cap)}
}

// Send queues a protocol line for the next bridge Poll.
func (rt *MockRuntime) Send(line string) {
	rt.lines <- line
}

// Events returns the inbound line channel.
func (rt *MockRuntime) Events() <-chan string {
	return rt.lines
}

// Dispatch records the event.
func (rt *MockRuntime) Dispatch(ev OutboundEvent) {
	rt.Dispatched = append(rt.Dispatched, ev)
}
