package lantern

import "github.com/hajimehoshi/ebiten/v2"

// Filter is the interface for post-processes applied to a rendered layer.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels the effect reaches beyond the source.
	Padding() int
}

// blurKernel is the 9-tap Gaussian approximation: center weight plus four
// symmetric taps per side. The weights sum to 1.0 and are a fixed design
// constant, not runtime-configurable.
var blurKernel = [5]float64{0.227027, 0.194595, 0.121622, 0.054054, 0.016216}

// Pass directions for the two separable convolutions. The horizontal pass
// must run first; its output is the vertical pass's input.
var (
	blurHorizontal = [2]float32{1, 0}
	blurVertical   = [2]float32{0, 1}
)

// blurShaderSrc is a 1D 9-tap convolution along Dir. Sample positions clamp
// to the source region so a flat input convolves to itself.
const blurShaderSrc = `//kage:unit pixels
package main

var Weights [5]float
var Dir vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	orig := imageSrc0Origin()
	lo := orig + vec2(0.5)
	hi := orig + imageSrc0Size() - vec2(0.5)
	sum := imageSrc0At(clamp(src, lo, hi)) * Weights[0]
	for i := 1; i < 5; i++ {
		off := Dir * float(i)
		sum += imageSrc0At(clamp(src+off, lo, hi)) * Weights[i]
		sum += imageSrc0At(clamp(src-off, lo, hi)) * Weights[i]
	}
	return sum
}
`

var blurShader *ebiten.Shader

func ensureBlurShader() *ebiten.Shader {
	if blurShader == nil {
		s, err := ebiten.NewShader([]byte(blurShaderSrc))
		if err != nil {
			panic("lantern: failed to compile blur shader: " + err.Error())
		}
		blurShader = s
	}
	return blurShader
}

// GaussianBlurFilter applies the fixed two-pass separable Gaussian blur:
// a horizontal convolution into an intermediate target, then a vertical
// convolution reading the intermediate and writing the destination.
type GaussianBlurFilter struct {
	mid          *ebiten.Image
	uniforms     map[string]any
	weightsF32   [5]float32 // persistent buffer to avoid per-frame slice escape
	weightsSlice []float32  // persistent slice header pointing into weightsF32
	dirBuf       [2]float32
	dirSlice     []float32
	shaderOp     ebiten.DrawRectShaderOptions
}

// NewGaussianBlurFilter creates the blur filter.
func NewGaussianBlurFilter() *GaussianBlurFilter {
	f := &GaussianBlurFilter{
		uniforms: make(map[string]any, 2),
	}
	f.weightsSlice = f.weightsF32[:]
	f.dirSlice = f.dirBuf[:]
	for i, w := range blurKernel {
		f.weightsF32[i] = float32(w)
	}
	f.uniforms["Weights"] = f.weightsSlice
	f.uniforms["Dir"] = f.dirSlice
	return f
}

// Apply renders the two blur passes from src into dst. The intermediate
// target is retained between frames and recreated on size changes.
func (f *GaussianBlurFilter) Apply(src, dst *ebiten.Image) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if f.mid == nil || f.mid.Bounds().Dx() != w || f.mid.Bounds().Dy() != h {
		if f.mid != nil {
			f.mid.Deallocate()
		}
		f.mid = ebiten.NewImage(w, h)
	} else {
		f.mid.Clear()
	}

	shader := ensureBlurShader()

	// Horizontal pass: src -> mid.
	f.dirBuf[0], f.dirBuf[1] = blurHorizontal[0], blurHorizontal[1]
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	f.mid.DrawRectShader(w, h, shader, &f.shaderOp)

	// Vertical pass: mid -> dst.
	f.dirBuf[0], f.dirBuf[1] = blurVertical[0], blurVertical[1]
	f.shaderOp.Images[0] = f.mid
	dst.DrawRectShader(w, h, shader, &f.shaderOp)
}

// Padding returns 4, the kernel's reach in pixels.
func (f *GaussianBlurFilter) Padding() int { return 4 }
