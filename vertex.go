package lantern

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Vertex attribute layout, per quad corner: position (pixel space), color
// (0..1), uv, and the effect bitmask. The bitmask is flat — identical on all
// four corners — and uv doubles as a local-position proxy for center-relative
// effects. On submission the attributes map onto ebiten.Vertex with uv and
// flags in the custom slots (Custom0 = flags, Custom1/2 = uv).
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
	U, V       float32
	Flags      uint32
}

// shakeAmplitude, shakeRate, and shakeWave define the Shake displacement:
// position.x += sin(time*20 + position.y*0.1) * 5 pixels.
const (
	shakeRate      = 20.0
	shakeWave      = 0.1
	shakeAmplitude = 5.0
)

// shakeOffset returns the horizontal Shake displacement for a vertex at the
// given y, in pixels. Bounded by ±shakeAmplitude. All arithmetic is float32,
// matching the GPU stages.
func shakeOffset(time, y float32) float32 {
	return float32(math.Sin(float64(time*shakeRate+y*shakeWave))) * shakeAmplitude
}

// vertexStage applies the per-vertex effects that precede projection. Only
// Shake displaces geometry; color, uv, and flags pass through unmodified.
func vertexStage(v Vertex, time float32) Vertex {
	if EffectFlag(v.Flags)&EffectShake != 0 {
		v.X += shakeOffset(time, v.Y)
	}
	return v
}

// projectNDC maps a pixel-space point to normalized device coordinates.
// Y is flipped: screen space grows downward, device space grows upward, so
// pixel (0,0) projects to NDC (-1, 1).
func projectNDC(x, y, width, height float32) (nx, ny float32) {
	nx = x/width*2 - 1
	ny = (1-y/height)*2 - 1
	return nx, ny
}

// ndcToScreen is the inverse of projectNDC: it maps NDC back to the
// presentation pixel space. The overlay positions its elements through this
// round trip so it aligns exactly with the projected geometry.
func ndcToScreen(nx, ny, width, height float32) (x, y float32) {
	x = (nx + 1) / 2 * width
	y = (1 - (ny+1)/2) * height
	return x, y
}

// quadIndices is the two-triangle index pattern for one quad's four corners.
var quadIndices = [6]uint16{0, 1, 2, 2, 1, 3}

// appendQuad runs the vertex stage over a drawable's four corners and
// appends them, premultiplied, to the ebiten vertex/index buffers.
// Corner order: top-left, top-right, bottom-left, bottom-right.
func appendQuad(verts []ebiten.Vertex, inds []uint16, d *Drawable, time float32) ([]ebiten.Vertex, []uint16) {
	b := d.Bounds()
	base := uint16(len(verts))

	cr := float32(d.Color.R * d.Color.A)
	cg := float32(d.Color.G * d.Color.A)
	cb := float32(d.Color.B * d.Color.A)
	ca := float32(d.Color.A)
	flags := uint32(d.Flags)

	// Textured drawables map uv into the image's pixel space; solid quads
	// sample the white pixel's center on every corner.
	srcOX, srcOY := float32(0), float32(0)
	srcW, srcH := float32(0), float32(0)
	if d.Image != nil {
		ib := d.Image.Bounds()
		srcOX, srcOY = float32(ib.Min.X), float32(ib.Min.Y)
		srcW, srcH = float32(ib.Dx()), float32(ib.Dy())
	}

	corners := [4]Vertex{
		{X: float32(b.X), Y: float32(b.Y), U: float32(d.UV.X), V: float32(d.UV.Y)},
		{X: float32(b.X + b.Width), Y: float32(b.Y), U: float32(d.UV.X + d.UV.Width), V: float32(d.UV.Y)},
		{X: float32(b.X), Y: float32(b.Y + b.Height), U: float32(d.UV.X), V: float32(d.UV.Y + d.UV.Height)},
		{X: float32(b.X + b.Width), Y: float32(b.Y + b.Height), U: float32(d.UV.X + d.UV.Width), V: float32(d.UV.Y + d.UV.Height)},
	}

	for i := range corners {
		c := corners[i]
		c.R, c.G, c.B, c.A = cr, cg, cb, ca
		c.Flags = flags
		c = vertexStage(c, time)
		srcX, srcY := float32(0.5), float32(0.5)
		if d.Image != nil {
			srcX = srcOX + c.U*srcW
			srcY = srcOY + c.V*srcH
		}
		verts = append(verts, ebiten.Vertex{
			DstX:    c.X,
			DstY:    c.Y,
			SrcX:    srcX,
			SrcY:    srcY,
			ColorR:  c.R,
			ColorG:  c.G,
			ColorB:  c.B,
			ColorA:  c.A,
			Custom0: float32(c.Flags),
			Custom1: c.U,
			Custom2: c.V,
		})
	}
	for _, idx := range quadIndices {
		inds = append(inds, base+idx)
	}
	return verts, inds
}
