package lantern

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Protocol tags. One event per line: "[Tag] <payload>".
const (
	tagOutput        = "[Output]"
	tagAnimation     = "[Animation]"
	tagRegisterEvent = "[RegisterEvent]"
)

// Bridge decodes tagged text lines from the runtime into Events and carries
// interaction results back. Decoded events accumulate in arrival order and
// are drained exactly once per tick by the frame loop; outbound events are
// held until Flush at the end of the tick.
type Bridge struct {
	runtime   Runtime
	queue     []Event
	outbound  []OutboundEvent
	outputSeq int // id counter for text/number drawables, which arrive unnamed
}

// NewBridge creates a bridge attached to the given runtime. A nil runtime is
// allowed; the bridge then only sees lines injected via Feed.
func NewBridge(rt Runtime) *Bridge {
	return &Bridge{runtime: rt}
}

// Feed decodes a single protocol line and enqueues the resulting event.
// A malformed payload is dropped; the failure is isolated to this line.
func (b *Bridge) Feed(line string) {
	ev, err := b.DecodeLine(line)
	if err != nil {
		debugf("dropped line: %v", err)
		return
	}
	b.queue = append(b.queue, ev)
}

// Poll drains all pending runtime lines, decodes them, and returns every
// event queued since the previous Poll, in arrival order. The returned slice
// is only valid until the next Poll.
func (b *Bridge) Poll() []Event {
	if b.runtime != nil {
		for draining := true; draining; {
			select {
			case line, ok := <-b.runtime.Events():
				if !ok {
					b.runtime = nil
					draining = false
					break
				}
				b.Feed(line)
			default:
				draining = false
			}
		}
	}
	events := b.queue
	b.queue = b.queue[:0]
	return events
}

// QueueOutbound records an interaction result for dispatch at end of tick.
func (b *Bridge) QueueOutbound(id, name string) {
	b.outbound = append(b.outbound, OutboundEvent{ID: id, Name: name})
}

// Flush dispatches queued outbound events to the runtime, in order.
func (b *Bridge) Flush() {
	if len(b.outbound) == 0 {
		return
	}
	if b.runtime != nil {
		for _, ev := range b.outbound {
			b.runtime.Dispatch(ev)
		}
	}
	b.outbound = b.outbound[:0]
}

// DecodeLine decodes one protocol line into an Event. Lines with no
// recognized tag become UnparsedEvents; a recognized tag with a malformed
// payload returns an error and no event.
func (b *Bridge) DecodeLine(line string) (Event, error) {
	switch {
	case strings.HasPrefix(line, tagOutput):
		return b.decodeOutput(strings.TrimSpace(line[len(tagOutput):])), nil
	case strings.HasPrefix(line, tagAnimation):
		return decodeAnimation(strings.TrimSpace(line[len(tagAnimation):]))
	case strings.HasPrefix(line, tagRegisterEvent):
		return decodeRegisterEvent(strings.TrimSpace(line[len(tagRegisterEvent):]))
	default:
		return UnparsedEvent{Raw: line}, nil
	}
}

// decodeOutput decodes an [Output] payload. A structured component literal
// becomes a card; a finite real number becomes a number drawable; anything
// else becomes a text drawable. Output decoding never fails.
func (b *Bridge) decodeOutput(payload string) Event {
	if style, label, ok := parseComponentLiteral(payload); ok {
		return DrawEvent{Drawable: Drawable{
			ID:         label,
			Kind:       KindCard,
			Style:      style,
			Label:      label,
			Color:      StyleColor(style),
			UV:         Rect{0, 0, 1, 1},
			AutoPlaced: true,
		}}
	}
	if v, err := strconv.ParseFloat(payload, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		b.outputSeq++
		return DrawEvent{Drawable: Drawable{
			ID:         fmt.Sprintf("output-%d", b.outputSeq),
			Kind:       KindNumber,
			Text:       payload,
			Color:      ColorWhite,
			UV:         Rect{0, 0, 1, 1},
			AutoPlaced: true,
		}}
	}
	b.outputSeq++
	return DrawEvent{Drawable: Drawable{
		ID:         fmt.Sprintf("output-%d", b.outputSeq),
		Kind:       KindText,
		Text:       payload,
		Color:      ColorWhite,
		UV:         Rect{0, 0, 1, 1},
		AutoPlaced: true,
	}}
}

// parseComponentLiteral matches the "[style kind 'label']" form.
// The kind token is accepted but not distinguished; every component
// literal renders as a card.
func parseComponentLiteral(s string) (style, label string, ok bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", "", false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	parts := strings.SplitN(inner, " ", 3)
	if len(parts) != 3 {
		return "", "", false
	}
	style = parts[0]
	kind := parts[1]
	quoted := strings.TrimSpace(parts[2])
	if style == "" || kind == "" {
		return "", "", false
	}
	if len(quoted) < 2 || quoted[0] != '\'' || quoted[len(quoted)-1] != '\'' {
		return "", "", false
	}
	label = quoted[1 : len(quoted)-1]
	if label == "" {
		return "", "", false
	}
	return style, label, true
}

// animationRecord is the wire shape of an [Animation] payload.
type animationRecord struct {
	Target   string          `json:"target"`
	Property string          `json:"property"`
	Value    json.RawMessage `json:"value"`
	Duration float64         `json:"duration"`
}

// decodeAnimation decodes an [Animation] JSON record. Any field-shape
// mismatch is an error; the caller drops the line.
func decodeAnimation(payload string) (Event, error) {
	var rec animationRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode animation: %w", err)
	}
	if rec.Target == "" {
		return nil, fmt.Errorf("decode animation: missing target")
	}
	prop, ok := parseProperty(rec.Property)
	if !ok {
		return nil, fmt.Errorf("decode animation: unknown property %q", rec.Property)
	}
	if rec.Duration < 0 || math.IsInf(rec.Duration, 0) || math.IsNaN(rec.Duration) {
		return nil, fmt.Errorf("decode animation: bad duration %v", rec.Duration)
	}
	val, err := decodePropertyValue(rec.Value)
	if err != nil {
		return nil, fmt.Errorf("decode animation: %w", err)
	}
	return AnimateEvent{
		Target:   rec.Target,
		Property: prop,
		Value:    val,
		Duration: float32(rec.Duration),
	}, nil
}

// decodePropertyValue accepts a JSON number or string for the value field.
func decodePropertyValue(raw json.RawMessage) (PropertyValue, error) {
	if len(raw) == 0 {
		return PropertyValue{}, fmt.Errorf("missing value")
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if math.IsInf(num, 0) || math.IsNaN(num) {
			return PropertyValue{}, fmt.Errorf("non-finite value")
		}
		return PropertyValue{Number: num}, nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return PropertyValue{Name: name, IsName: true}, nil
	}
	return PropertyValue{}, fmt.Errorf("value must be a number or string, got %s", raw)
}

// decodeRegisterEvent decodes the fixed two-token "<id> <event_name>" form.
func decodeRegisterEvent(payload string) (Event, error) {
	parts := strings.Fields(payload)
	if len(parts) != 2 {
		return nil, fmt.Errorf("register event: want \"<id> <event_name>\", got %q", payload)
	}
	return RegisterHandlerEvent{Target: parts[0], Name: parts[1]}, nil
}
