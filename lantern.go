package lantern

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// WhitePixel is a 1x1 white image used as the texture sample source for
// solid-color drawables.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// EffectFlag is one bit in a drawable's effect bitmask. The set is closed:
// new effects reserve new bits rather than adding a dispatch mechanism.
type EffectFlag uint32

const (
	EffectPulse   EffectFlag = 1 << iota // additive brightness oscillation
	EffectShake                          // horizontal vertex displacement
	EffectRainbow                        // hue-cycling color multiply
)

// effectMask covers every defined effect bit. Bits outside the mask are
// stripped at decode time.
const effectMask = EffectPulse | EffectShake | EffectRainbow

// Kind distinguishes rendering behavior for a Drawable.
type Kind uint8

const (
	KindQuad   Kind = iota // plain colored quad
	KindCard               // styled component with a label
	KindText               // text rendered on the overlay layer
	KindNumber             // numeric output; shares the text render path
)

// StyleColor maps a card style tag to its fill color. Unknown styles get
// the neutral gray fill.
func StyleColor(style string) Color {
	switch style {
	case "Blue", "青い":
		return Color{0.2, 0.4, 0.8, 1}
	case "Red", "赤い":
		return Color{0.8, 0.2, 0.2, 1}
	case "Green", "緑の":
		return Color{0.2, 0.8, 0.2, 1}
	case "White", "白い":
		return Color{1, 1, 1, 1}
	default:
		return Color{0.5, 0.5, 0.5, 1}
	}
}

// namedColor resolves a color name used as an Animate target value.
// It reports false for names outside the style palette and the handful of
// script color words.
func namedColor(name string) (Color, bool) {
	switch name {
	case "blue", "Blue", "青い":
		return Color{0.2, 0.4, 0.8, 1}, true
	case "red", "Red", "赤い":
		return Color{0.8, 0.2, 0.2, 1}, true
	case "green", "Green", "緑の":
		return Color{0.2, 0.8, 0.2, 1}, true
	case "white", "White", "白い":
		return Color{1, 1, 1, 1}, true
	case "cyan", "水色":
		return Color{0, 1, 1, 1}, true
	default:
		return Color{}, false
	}
}
