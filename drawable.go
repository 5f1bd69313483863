package lantern

import "github.com/hajimehoshi/ebiten/v2"

// Drawable is a renderable quad in the scene. Drawables are created by Draw
// events, mutated in place by later Draw/Animate events referencing the same
// id, and removed only by an explicit Store.Reset — never implicitly expired.
type Drawable struct {
	ID     string
	Kind   Kind
	X, Y   float64 // top-left corner, pixel space
	Width  float64
	Height float64
	Color  Color
	UV     Rect // texture sub-rectangle, normalized [0,1]
	Flags  EffectFlag

	// Image is the texture sampled through UV. Nil means the shared white
	// pixel (a solid-color quad). Set by a background animation naming a
	// registered image.
	Image *ebiten.Image

	// Card metadata (KindCard only).
	Style string
	Label string

	// Text content (KindText, KindNumber).
	Text string

	// AutoPlaced drawables came through the bridge without coordinates and
	// are positioned by the flow layout each tick.
	AutoPlaced bool

	// Tween-written property overrides.
	Scale  float64 // uniform scale about the quad center; 1 = unscaled
	Shadow float64 // drop shadow depth in pixels; 0 = no shadow
}

// Bounds returns the drawable's screen rectangle with the scale override
// applied about the quad center.
func (d *Drawable) Bounds() Rect {
	if d.Scale == 1 {
		return Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
	}
	w := d.Width * d.Scale
	h := d.Height * d.Scale
	return Rect{
		X:      d.X + (d.Width-w)/2,
		Y:      d.Y + (d.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// textual reports whether the drawable renders on the overlay text layer
// instead of the GPU effect pipeline.
func (d *Drawable) textual() bool {
	return d.Kind == KindText || d.Kind == KindNumber
}
