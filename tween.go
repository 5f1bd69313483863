package lantern

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// shadowSnapDepth is the boundary for the shadow threshold property: the
// rendered shadow gains its deep second layer past this depth, so the tween
// snaps the override there instead of interpolating through it.
const shadowSnapDepth = 5.0

// tweenKey identifies the one live tween allowed per (target, property).
type tweenKey struct {
	target   string
	property Property
}

// Tween animates one property of one drawable. Continuous properties drive
// up to 4 float64 fields through linear gween tweens; the threshold variant
// interpolates a hidden driver value and snaps the visible field at the
// policy boundary.
type Tween struct {
	key tweenKey

	// Continuous channels (color: 4, scale: 1).
	chans  [4]*gween.Tween
	fields [4]*float64
	count  int

	// Threshold variant (shadow).
	threshold bool
	driver    *gween.Tween
	from, to  float64
	field     *float64
	current   float64
}

// Update advances the tween by dt seconds, writes the property override,
// and reports whether the tween completed. On completion the override is
// frozen at the destination value.
func (t *Tween) Update(dt float32) bool {
	if t.threshold {
		v, finished := t.driver.Update(dt)
		t.current = float64(v)
		if finished {
			*t.field = t.to
			return true
		}
		*t.field = thresholdValue(t.from, t.to, t.current)
		return false
	}

	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.chans[i].Update(dt)
		*t.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	return allDone
}

// Driver returns the continuous driver value of a threshold tween, used so a
// replacement tween resumes from the true interpolated position rather than
// the snapped override.
func (t *Tween) Driver() float64 {
	return t.current
}

// thresholdValue snaps between from and to depending on which side of
// shadowSnapDepth the driver value sits. When the boundary does not lie
// between the endpoints the value holds at from until completion.
func thresholdValue(from, to, v float64) float64 {
	switch {
	case from <= shadowSnapDepth && to > shadowSnapDepth:
		if v > shadowSnapDepth {
			return to
		}
		return from
	case from > shadowSnapDepth && to <= shadowSnapDepth:
		if v <= shadowSnapDepth {
			return to
		}
		return from
	default:
		return from
	}
}

// newTween builds the tween for an Animate event against a live drawable.
// prevDriver carries the replaced tween's driver value for threshold
// properties; hasPrev reports whether a tween was replaced.
func newTween(d *Drawable, ev AnimateEvent, prevDriver float64, hasPrev bool) (*Tween, error) {
	key := tweenKey{target: ev.Target, property: ev.Property}

	switch ev.Property {
	case PropertyColor:
		if !ev.Value.IsName {
			return nil, fmt.Errorf("color value must be a color name, got %v", ev.Value.Number)
		}
		to, ok := namedColor(ev.Value.Name)
		if !ok {
			return nil, fmt.Errorf("unknown color name %q", ev.Value.Name)
		}
		t := &Tween{key: key, count: 4}
		t.chans[0] = gween.New(float32(d.Color.R), float32(to.R), ev.Duration, ease.Linear)
		t.chans[1] = gween.New(float32(d.Color.G), float32(to.G), ev.Duration, ease.Linear)
		t.chans[2] = gween.New(float32(d.Color.B), float32(to.B), ev.Duration, ease.Linear)
		t.chans[3] = gween.New(float32(d.Color.A), float32(to.A), ev.Duration, ease.Linear)
		t.fields[0] = &d.Color.R
		t.fields[1] = &d.Color.G
		t.fields[2] = &d.Color.B
		t.fields[3] = &d.Color.A
		return t, nil

	case PropertyScale:
		if ev.Value.IsName {
			return nil, fmt.Errorf("scale value must be a number, got %q", ev.Value.Name)
		}
		t := &Tween{key: key, count: 1}
		t.chans[0] = gween.New(float32(d.Scale), float32(ev.Value.Number), ev.Duration, ease.Linear)
		t.fields[0] = &d.Scale
		return t, nil

	case PropertyShadow:
		to := ev.Value.Number
		if ev.Value.IsName {
			// "deepen" is the one scripted shadow word with a fixed depth.
			if ev.Value.Name != "deepen" {
				return nil, fmt.Errorf("unknown shadow value %q", ev.Value.Name)
			}
			to = 20.0
		}
		from := d.Shadow
		if hasPrev {
			from = prevDriver
		}
		t := &Tween{
			key:       key,
			threshold: true,
			from:      from,
			to:        to,
			field:     &d.Shadow,
			current:   from,
		}
		t.driver = gween.New(float32(from), float32(to), ev.Duration, ease.Linear)
		return t, nil

	default:
		return nil, fmt.Errorf("unknown property %d", ev.Property)
	}
}
