package lantern

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a session script.
type scriptStep struct {
	Action string  `json:"action"`
	Line   string  `json:"line,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// sessionScript is the top-level JSON structure for a session script.
type sessionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays protocol lines and pointer input across frames for
// automated end-to-end runs. Attach to a Canvas via SetScriptRunner; one
// step executes per tick.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON session script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script sessionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse session script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse session script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Canvas.Update.
func (r *ScriptRunner) step(c *Canvas) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "feed":
		c.bridge.Feed(st.Line)
	case "click":
		c.comp.PointerDown(c.store, c.bridge, st.X, st.Y)
	case "move":
		c.comp.PointerMove(c.store, c.bridge, st.X, st.Y)
	case "reset":
		c.store.Reset()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		debugf("script: unknown action %q", st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
