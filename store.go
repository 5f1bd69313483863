package lantern

import "github.com/hajimehoshi/ebiten/v2"

// Store holds the live scene: drawables keyed by id, active property tweens,
// hit-test bindings, and the named image registry. All mutation happens
// through Apply and Advance, which the frame loop calls in tick order — a
// render read therefore always sees every event applied up to and including
// the most recent Advance, and never a partially applied one.
type Store struct {
	drawables map[string]*Drawable
	order     []string // arrival order; also the draw and layout order
	tweens    map[tweenKey]*Tween
	handlers  map[string]map[string]struct{}
	images    map[string]*ebiten.Image

	listBuf []*Drawable // reused by Drawables
}

// NewStore creates an empty scene store.
func NewStore() *Store {
	return &Store{
		drawables: make(map[string]*Drawable),
		tweens:    make(map[tweenKey]*Tween),
		handlers:  make(map[string]map[string]struct{}),
		images:    make(map[string]*ebiten.Image),
	}
}

// RegisterImage makes a named texture available to background animations:
// an [Animation] targeting the color property whose value names a
// registered image sets the drawable's texture instead of starting a color
// tween. Registered images are assets, not scene state — they survive
// Reset.
func (s *Store) RegisterImage(name string, img *ebiten.Image) {
	s.images[name] = img
}

// Apply applies one decoded event to the scene. Events referencing unknown
// drawable ids are dropped silently (logged in debug mode); a dropped event
// is never retried.
func (s *Store) Apply(ev Event) {
	switch e := ev.(type) {
	case DrawEvent:
		s.applyDraw(e.Drawable)
	case AnimateEvent:
		s.applyAnimate(e)
	case RegisterHandlerEvent:
		if _, ok := s.drawables[e.Target]; !ok {
			debugf("register %q on unknown drawable %q", e.Name, e.Target)
			return
		}
		set := s.handlers[e.Target]
		if set == nil {
			set = make(map[string]struct{})
			s.handlers[e.Target] = set
		}
		set[e.Name] = struct{}{}
	case UnparsedEvent:
		debugf("unparsed line: %q", e.Raw)
	}
}

// applyDraw inserts a new drawable or updates an existing one in place.
// Animation-written overrides (scale, shadow, background image) survive a
// re-draw of the same id; everything else comes from the incoming drawable.
func (s *Store) applyDraw(in Drawable) {
	in.Flags &= effectMask
	if d, ok := s.drawables[in.ID]; ok {
		scale, shadow := d.Scale, d.Shadow
		img := d.Image
		*d = in
		d.Scale, d.Shadow = scale, shadow
		if d.Image == nil {
			d.Image = img
		}
		return
	}
	d := in
	if d.Scale == 0 {
		d.Scale = 1
	}
	s.drawables[d.ID] = &d
	s.order = append(s.order, d.ID)
}

// applyAnimate starts or replaces the tween keyed by (target, property).
// Replacement is immediate: the old tween stops contributing and the new one
// starts from the property's current value.
func (s *Store) applyAnimate(ev AnimateEvent) {
	d, ok := s.drawables[ev.Target]
	if !ok {
		debugf("animate %v on unknown drawable %q", ev.Property, ev.Target)
		return
	}
	key := tweenKey{target: ev.Target, property: ev.Property}
	if ev.Property == PropertyColor && ev.Value.IsName {
		if img, ok := s.images[ev.Value.Name]; ok {
			// Background image swap: not interpolable, applies
			// immediately and stops any running color tween.
			d.Image = img
			delete(s.tweens, key)
			return
		}
	}
	var prevDriver float64
	hasPrev := false
	if old, ok := s.tweens[key]; ok && old.threshold {
		prevDriver = old.Driver()
		hasPrev = true
	}
	t, err := newTween(d, ev, prevDriver, hasPrev)
	if err != nil {
		debugf("animate %q: %v", ev.Target, err)
		return
	}
	s.tweens[key] = t
}

// Advance steps every live tween by dt seconds. Completed tweens are removed;
// their drawable override stays frozen at the destination value.
func (s *Store) Advance(dt float32) {
	for key, t := range s.tweens {
		if t.Update(dt) {
			delete(s.tweens, key)
		}
	}
}

// Reset removes every drawable, tween, and handler binding. This is the only
// way drawables leave the scene.
func (s *Store) Reset() {
	clear(s.drawables)
	clear(s.tweens)
	clear(s.handlers)
	s.order = s.order[:0]
}

// Get returns the drawable with the given id, or nil.
func (s *Store) Get(id string) *Drawable {
	return s.drawables[id]
}

// Len returns the number of live drawables.
func (s *Store) Len() int {
	return len(s.drawables)
}

// ActiveTweens returns the number of live tweens.
func (s *Store) ActiveTweens() int {
	return len(s.tweens)
}

// HasHandler reports whether the drawable has a binding for the event name.
func (s *Store) HasHandler(id, name string) bool {
	set, ok := s.handlers[id]
	if !ok {
		return false
	}
	_, ok = set[name]
	return ok
}

// Drawables returns the live drawables in arrival order. The returned slice
// is reused across calls and MUST NOT be retained.
func (s *Store) Drawables() []*Drawable {
	s.listBuf = s.listBuf[:0]
	for _, id := range s.order {
		s.listBuf = append(s.listBuf, s.drawables[id])
	}
	return s.listBuf
}
