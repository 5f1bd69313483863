package lantern

import "unicode/utf8"

// Flow layout constants for drawables that arrive through the bridge without
// coordinates: a single padded column with a fixed gap, text rows at the
// terminal row height, and a default box size for unsized components.
const (
	layoutPadding    = 20.0
	layoutGap        = 10.0
	layoutTextHeight = 24.0
	layoutBoxSize    = 100.0
	layoutCardHeight = 64.0

	// Overlay glyph metrics (debug text): 6x16 pixels per character.
	glyphWidth  = 6.0
	glyphHeight = 16.0
)

// layoutFlow assigns positions and sizes to auto-placed drawables, stacking
// them top to bottom inside the screen padding. Explicitly positioned
// drawables are untouched. Runs every tick before hit testing so bounds are
// current when input arrives.
func layoutFlow(drawables []*Drawable) {
	y := layoutPadding
	for _, d := range drawables {
		if !d.AutoPlaced {
			continue
		}
		if d.Width == 0 || d.Height == 0 {
			d.Width, d.Height = defaultSize(d)
		}
		d.X = layoutPadding
		d.Y = y
		y += d.Height + layoutGap
	}
}

// labelWidth estimates the overlay width of s in pixels. Counted in runes,
// not bytes: style names and labels may be CJK.
func labelWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * glyphWidth
}

// defaultSize returns the intrinsic size for an unsized drawable.
func defaultSize(d *Drawable) (w, h float64) {
	switch d.Kind {
	case KindCard:
		w = labelWidth(d.Label) + 2*layoutPadding
		if w < layoutBoxSize {
			w = layoutBoxSize
		}
		return w, layoutCardHeight
	case KindText, KindNumber:
		w = labelWidth(d.Text)
		if w < glyphWidth {
			w = glyphWidth
		}
		return w, layoutTextHeight
	default:
		return layoutBoxSize, layoutBoxSize
	}
}
