package lantern

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Compositor merges the GPU-rendered scene layer with the interactive
// overlay and routes pointer hits back through the bridge. Overlay elements
// are positioned through the same pixel-to-presentation transform as the
// effect pipeline (projectNDC and back), so alignment is exact.
type Compositor struct {
	pool renderTexturePool
	blur Filter

	// BlurEnabled switches the two-pass blur post-process on.
	BlurEnabled bool

	hover string // id of the drawable under the pointer, "" = none
	imgOp ebiten.DrawImageOptions
}

// NewCompositor creates a compositor with blur available but disabled.
func NewCompositor() *Compositor {
	return &Compositor{blur: NewGaussianBlurFilter()}
}

// Frame renders one presented frame: effect pass into an offscreen layer,
// optional blur passes, merge onto screen, then the text overlay on top.
func (c *Compositor) Frame(screen *ebiten.Image, drawables []*Drawable, pipe *Pipeline, u *Uniforms) {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	layer := c.pool.Acquire(w, h)
	pipe.Draw(layer, drawables, u)

	if c.BlurEnabled {
		blurred := c.pool.Acquire(w, h)
		c.blur.Apply(layer, blurred)
		c.pool.Release(layer)
		layer = blurred
	}

	c.imgOp.GeoM.Reset()
	c.imgOp.ColorScale.Reset()
	screen.DrawImage(layer, &c.imgOp)
	c.pool.Release(layer)

	c.drawOverlay(screen, drawables, u)
}

// drawOverlay renders textual drawables and card labels. Glyph layout and
// shaping are out of scope; the debug face is enough for labels and numbers.
func (c *Compositor) drawOverlay(screen *ebiten.Image, drawables []*Drawable, u *Uniforms) {
	for _, d := range drawables {
		switch {
		case d.textual():
			x, y := overlayPoint(d.X, d.Y, u)
			ebitenutil.DebugPrintAt(screen, d.Text, int(x), int(y))
		case d.Kind == KindCard && d.Label != "":
			b := d.Bounds()
			lx := b.X + (b.Width-labelWidth(d.Label))/2
			ly := b.Y + (b.Height-glyphHeight)/2
			x, y := overlayPoint(lx, ly, u)
			ebitenutil.DebugPrintAt(screen, d.Label, int(x), int(y))
		}
	}
}

// overlayPoint maps a pixel-space point through the projection round trip
// used by the vertex stage, yielding the presentation-space position.
func overlayPoint(x, y float64, u *Uniforms) (float64, float64) {
	w, h := u.Size()
	nx, ny := projectNDC(float32(x), float32(y), w, h)
	px, py := ndcToScreen(nx, ny, w, h)
	return float64(px), float64(py)
}

// hitTest returns the topmost drawable whose bounds contain (x, y).
// Later arrivals draw on top, so the scan runs back to front.
func hitTest(drawables []*Drawable, x, y float64) *Drawable {
	for i := len(drawables) - 1; i >= 0; i-- {
		if drawables[i].Bounds().Contains(x, y) {
			return drawables[i]
		}
	}
	return nil
}

// PointerDown routes a pointer press. A hit on a drawable with a "click"
// binding queues the synthetic click on the bridge's outbound channel.
func (c *Compositor) PointerDown(store *Store, bridge *Bridge, x, y float64) {
	d := hitTest(store.Drawables(), x, y)
	if d == nil {
		return
	}
	if store.HasHandler(d.ID, "click") {
		bridge.QueueOutbound(d.ID, "click")
	}
}

// PointerMove tracks hover state. Entering a drawable with a "hover" binding
// queues the synthetic hover event; leaving clears the state.
func (c *Compositor) PointerMove(store *Store, bridge *Bridge, x, y float64) {
	d := hitTest(store.Drawables(), x, y)
	id := ""
	if d != nil {
		id = d.ID
	}
	if id == c.hover {
		return
	}
	c.hover = id
	if d != nil && store.HasHandler(id, "hover") {
		bridge.QueueOutbound(id, "hover")
	}
}
