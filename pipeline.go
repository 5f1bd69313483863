package lantern

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// effectShaderSrc is the fragment stage of the effect pipeline. Effects
// compose in fixed order: texture sample × vertex color, then Pulse's
// additive whitening, then Rainbow's hue multiply. The effect bitmask and uv
// arrive per vertex in the custom attributes; bits are extracted with
// float mod/floor so the shader stays within Kage's float arithmetic.
const effectShaderSrc = `//kage:unit pixels
package main

var Time float
var ScreenSize vec2

func hasBit(flags, bit float) bool {
	return mod(floor(flags/bit), 2) >= 1
}

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	base := imageSrc0At(src) * color
	flags := custom.x
	uv := custom.yz
	if hasBit(flags, 1) {
		p := (sin(Time*3) + 1) * 0.2
		base += vec4(p, p, p, 0)
	}
	if hasBit(flags, 4) {
		r := sin(Time+uv.x)*0.5 + 0.5
		g := sin(Time+uv.x+2.09)*0.5 + 0.5
		b := sin(Time+uv.x+4.18)*0.5 + 0.5
		base *= vec4(r, g, b, 1)
	}
	return base
}
`

// --- Lazy shader compilation (no sync.Once — lantern is single-threaded) ---

var effectShader *ebiten.Shader

func ensureEffectShader() *ebiten.Shader {
	if effectShader == nil {
		s, err := ebiten.NewShader([]byte(effectShaderSrc))
		if err != nil {
			panic("lantern: failed to compile effect shader: " + err.Error())
		}
		effectShader = s
	}
	return effectShader
}

// pulseTerm is the CPU reference of the shader's Pulse contribution:
// (sin(time*3)+1) * 0.2, range [0, 0.4].
func pulseTerm(time float32) float32 {
	return (float32(math.Sin(float64(time*3))) + 1) * 0.2
}

// rainbowTint is the CPU reference of the shader's Rainbow multiplier:
// three sine waves on time+u, phased 2.09 radians (~120°) apart.
func rainbowTint(time, u float32) (r, g, b float32) {
	r = float32(math.Sin(float64(time+u)))*0.5 + 0.5
	g = float32(math.Sin(float64(time+u+2.09)))*0.5 + 0.5
	b = float32(math.Sin(float64(time+u+4.18)))*0.5 + 0.5
	return r, g, b
}

// Shadow rendering constants, shared with the threshold tween policy: the
// offset scales with depth and a second, deeper layer appears past
// shadowSnapDepth.
const (
	shadowOffsetScale = 0.5
	shadowAlpha       = 0.1
	shadowDeepAlpha   = 0.05
	shadowDeepInset   = 2.0
)

// Pipeline tessellates drawables into effect-tagged quads and submits them
// one shader call per texture run. Vertex and index buffers are exclusively
// written by the frame loop; they are reused across frames.
type Pipeline struct {
	verts   []ebiten.Vertex
	inds    []uint16
	tex     *ebiten.Image
	batches int
	op      ebiten.DrawTrianglesShaderOptions
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// textureOf returns the image a drawable samples: its own texture, or the
// shared white pixel for solid quads.
func textureOf(d *Drawable) *ebiten.Image {
	if d.Image != nil {
		return d.Image
	}
	return WhitePixel
}

// Draw renders the given drawables into target, in slice order. Consecutive
// drawables sharing a texture batch into one shader call; a texture change
// flushes the run. Textual drawables are skipped — they belong to the
// overlay layer. The global uniform block must have been updated for this
// frame before the call.
func (p *Pipeline) Draw(target *ebiten.Image, drawables []*Drawable, u *Uniforms) {
	p.verts = p.verts[:0]
	p.inds = p.inds[:0]
	p.tex = nil
	p.batches = 0
	time := u.Elapsed()

	for _, d := range drawables {
		if d.textual() {
			continue
		}
		if d.Shadow > 0 {
			// Shadow quads are solid and sample the white pixel.
			p.setTexture(target, WhitePixel, u)
			p.appendShadow(d, time)
		}
		p.setTexture(target, textureOf(d), u)
		p.verts, p.inds = appendQuad(p.verts, p.inds, d, time)
	}
	p.flush(target, u)
}

// Batches returns the number of shader submissions in the last Draw,
// a per-frame diagnostic stat.
func (p *Pipeline) Batches() int {
	return p.batches
}

// setTexture switches the active texture run, flushing buffered quads first.
func (p *Pipeline) setTexture(target, img *ebiten.Image, u *Uniforms) {
	if p.tex == img {
		return
	}
	p.flush(target, u)
	p.tex = img
}

// flush submits the buffered quads of the current texture run.
func (p *Pipeline) flush(target *ebiten.Image, u *Uniforms) {
	if len(p.inds) == 0 {
		return
	}
	p.op.Images[0] = p.tex
	p.op.Uniforms = u.Map()
	target.DrawTrianglesShader(p.verts, p.inds, ensureEffectShader(), &p.op)
	p.batches++
	p.verts = p.verts[:0]
	p.inds = p.inds[:0]
}

// appendShadow emits the drop shadow quads behind a drawable: a translucent
// black quad offset by half the depth, plus a second layer once the depth
// passes shadowSnapDepth.
func (p *Pipeline) appendShadow(d *Drawable, time float32) {
	offset := d.Shadow * shadowOffsetScale

	s := *d
	s.X += offset
	s.Y += offset
	s.Color = Color{0, 0, 0, shadowAlpha}
	s.Flags = 0
	p.verts, p.inds = appendQuad(p.verts, p.inds, &s, time)

	if d.Shadow > shadowSnapDepth {
		s.X += shadowDeepInset
		s.Y += shadowDeepInset
		s.Color = Color{0, 0, 0, shadowDeepAlpha}
		p.verts, p.inds = appendQuad(p.verts, p.inds, &s, time)
	}
}
