package lantern

import "fmt"

// Uniforms tracks the per-frame global uniform block: screen size and
// elapsed time. Both are written into the shared shader uniform map once per
// frame, strictly before any draw submission. Time accumulates as float32
// across the session; precision loss over very long runs is accepted.
type Uniforms struct {
	width   float32
	height  float32
	elapsed float32

	m         map[string]any
	sizeBuf   [2]float32 // persistent buffer to avoid per-frame slice escape
	sizeSlice []float32  // persistent slice header pointing into sizeBuf
}

// NewUniforms creates a uniform block for the given initial screen size.
// Panics if either component is non-positive; use Resize for runtime checks.
func NewUniforms(width, height int) *Uniforms {
	u := &Uniforms{m: make(map[string]any, 2)}
	u.sizeSlice = u.sizeBuf[:]
	u.m["ScreenSize"] = u.sizeSlice
	if err := u.Resize(width, height); err != nil {
		panic("lantern: " + err.Error())
	}
	return u
}

// Resize updates the screen size. A non-positive component is a
// configuration error rejected here, never tolerated at draw time — it would
// mean division by zero in the projection.
func (u *Uniforms) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", width, height)
	}
	u.width = float32(width)
	u.height = float32(height)
	return nil
}

// Update accumulates elapsed time by dt seconds and refreshes the uniform
// map. Negative dt is clamped to zero so elapsed time never decreases.
func (u *Uniforms) Update(dt float32) {
	if dt > 0 {
		u.elapsed += dt
	}
	u.sizeBuf[0] = u.width
	u.sizeBuf[1] = u.height
	u.m["Time"] = u.elapsed
}

// Map returns the uniform map shared by every shader submission this frame.
// The map is owned by the Uniforms; callers must not mutate it.
func (u *Uniforms) Map() map[string]any {
	return u.m
}

// Elapsed returns the accumulated session time in seconds.
func (u *Uniforms) Elapsed() float32 {
	return u.elapsed
}

// Size returns the current screen size in pixels.
func (u *Uniforms) Size() (width, height float32) {
	return u.width, u.height
}
