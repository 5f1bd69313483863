package lantern

import "testing"

func TestDecodeOutputKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
	}{
		{"card", "[Output] [Blue card 'Hello']", KindCard},
		{"card other style", "[Output] [Red button 'Go']", KindCard},
		{"integer", "[Output] 42", KindNumber},
		{"float", "[Output] -3.14", KindNumber},
		{"inf is text", "[Output] Inf", KindText},
		{"nan is text", "[Output] NaN", KindText},
		{"plain text", "[Output] hello world", KindText},
		{"unquoted label is text", "[Output] [Blue card Hello]", KindText},
		{"empty label is text", "[Output] [Blue card '']", KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBridge(nil)
			ev, err := b.DecodeLine(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			draw, ok := ev.(DrawEvent)
			if !ok {
				t.Fatalf("expected DrawEvent, got %T", ev)
			}
			if draw.Drawable.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", draw.Drawable.Kind, tt.kind)
			}
			if !draw.Drawable.AutoPlaced {
				t.Error("output drawables should be auto-placed")
			}
		})
	}
}

func TestDecodeOutputCardFields(t *testing.T) {
	b := NewBridge(nil)
	ev, err := b.DecodeLine("[Output] [Blue card 'Hello']")
	if err != nil {
		t.Fatal(err)
	}
	d := ev.(DrawEvent).Drawable
	if d.ID != "Hello" || d.Style != "Blue" || d.Label != "Hello" {
		t.Errorf("card fields = %q/%q/%q", d.ID, d.Style, d.Label)
	}
	if d.Color != StyleColor("Blue") {
		t.Errorf("card color = %v, want style color", d.Color)
	}
}

func TestDecodeOutputSequentialIDs(t *testing.T) {
	b := NewBridge(nil)
	first, _ := b.DecodeLine("[Output] one")
	second, _ := b.DecodeLine("[Output] 7")
	if id := first.(DrawEvent).Drawable.ID; id != "output-1" {
		t.Errorf("first id = %q", id)
	}
	if id := second.(DrawEvent).Drawable.ID; id != "output-2" {
		t.Errorf("second id = %q", id)
	}
}

func TestDecodeAnimation(t *testing.T) {
	b := NewBridge(nil)
	ev, err := b.DecodeLine(`[Animation] {"target": "Hello", "property": "color", "value": "blue", "duration": 0.5}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	anim, ok := ev.(AnimateEvent)
	if !ok {
		t.Fatalf("expected AnimateEvent, got %T", ev)
	}
	if anim.Target != "Hello" || anim.Property != PropertyColor {
		t.Errorf("target/property = %q/%v", anim.Target, anim.Property)
	}
	if !anim.Value.IsName || anim.Value.Name != "blue" {
		t.Errorf("value = %+v, want name blue", anim.Value)
	}
	if anim.Duration != 0.5 {
		t.Errorf("duration = %v, want 0.5", anim.Duration)
	}
}

func TestDecodeAnimationNumericValue(t *testing.T) {
	b := NewBridge(nil)
	ev, err := b.DecodeLine(`[Animation] {"target": "Box", "property": "scale", "value": 2.0, "duration": 1}`)
	if err != nil {
		t.Fatal(err)
	}
	anim := ev.(AnimateEvent)
	if anim.Value.IsName || anim.Value.Number != 2.0 {
		t.Errorf("value = %+v, want number 2.0", anim.Value)
	}
}

func TestDecodeAnimationMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not json", "[Animation] not json at all"},
		{"missing target", `[Animation] {"property": "color", "value": "blue", "duration": 1}`},
		{"unknown property", `[Animation] {"target": "a", "property": "spin", "value": 1, "duration": 1}`},
		{"negative duration", `[Animation] {"target": "a", "property": "scale", "value": 1, "duration": -1}`},
		{"object value", `[Animation] {"target": "a", "property": "scale", "value": {}, "duration": 1}`},
		{"missing value", `[Animation] {"target": "a", "property": "scale", "duration": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBridge(nil)
			if _, err := b.DecodeLine(tt.line); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}

func TestDecodeRegisterEvent(t *testing.T) {
	b := NewBridge(nil)
	ev, err := b.DecodeLine("[RegisterEvent] Btn click")
	if err != nil {
		t.Fatal(err)
	}
	reg, ok := ev.(RegisterHandlerEvent)
	if !ok {
		t.Fatalf("expected RegisterHandlerEvent, got %T", ev)
	}
	if reg.Target != "Btn" || reg.Name != "click" {
		t.Errorf("register = %q/%q", reg.Target, reg.Name)
	}

	if _, err := b.DecodeLine("[RegisterEvent] Btn"); err == nil {
		t.Error("expected error for one token")
	}
	if _, err := b.DecodeLine("[RegisterEvent] Btn click extra"); err == nil {
		t.Error("expected error for three tokens")
	}
}

func TestDecodeUntaggedLine(t *testing.T) {
	b := NewBridge(nil)
	ev, err := b.DecodeLine("some stray runtime chatter")
	if err != nil {
		t.Fatal(err)
	}
	up, ok := ev.(UnparsedEvent)
	if !ok {
		t.Fatalf("expected UnparsedEvent, got %T", ev)
	}
	if up.Raw != "some stray runtime chatter" {
		t.Errorf("raw = %q", up.Raw)
	}
}

func TestFeedDropsMalformedLineOnly(t *testing.T) {
	b := NewBridge(nil)
	b.Feed("[Output] [Blue card 'A']")
	b.Feed("[Animation] {broken")
	b.Feed("[Output] [Red card 'B']")

	events := b.Poll()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].(DrawEvent).Drawable.ID != "A" || events[1].(DrawEvent).Drawable.ID != "B" {
		t.Error("surviving events out of order")
	}
}

func TestPollDrainsRuntime(t *testing.T) {
	rt := NewMockRuntime(8)
	b := NewBridge(rt)
	rt.Send("[Output] [Blue card 'A']")
	rt.Send("[RegisterEvent] A click")

	events := b.Poll()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if _, ok := events[0].(DrawEvent); !ok {
		t.Errorf("event 0 = %T", events[0])
	}
	if _, ok := events[1].(RegisterHandlerEvent); !ok {
		t.Errorf("event 1 = %T", events[1])
	}

	// Nothing pending: next poll is empty.
	if events := b.Poll(); len(events) != 0 {
		t.Errorf("expected empty poll, got %d events", len(events))
	}
}

func TestFlushDispatchesInOrder(t *testing.T) {
	rt := NewMockRuntime(1)
	b := NewBridge(rt)
	b.QueueOutbound("Btn", "click")
	b.QueueOutbound("Card", "hover")

	if len(rt.Dispatched) != 0 {
		t.Fatal("outbound events must be deferred until Flush")
	}
	b.Flush()
	if len(rt.Dispatched) != 2 {
		t.Fatalf("expected 2 dispatched, got %d", len(rt.Dispatched))
	}
	if rt.Dispatched[0] != (OutboundEvent{ID: "Btn", Name: "click"}) {
		t.Errorf("dispatched[0] = %+v", rt.Dispatched[0])
	}
	if rt.Dispatched[1] != (OutboundEvent{ID: "Card", Name: "hover"}) {
		t.Errorf("dispatched[1] = %+v", rt.Dispatched[1])
	}

	// Flush drains the queue; a second flush is a no-op.
	b.Flush()
	if len(rt.Dispatched) != 2 {
		t.Error("second Flush should dispatch nothing")
	}
}
