package lantern

import (
	"math"
	"testing"
)

func TestUniformsElapsedAccumulates(t *testing.T) {
	u := NewUniforms(600, 400)
	if u.Elapsed() != 0 {
		t.Fatalf("initial elapsed = %v", u.Elapsed())
	}
	u.Update(0.5)
	u.Update(0.25)
	if math.Abs(float64(u.Elapsed())-0.75) > epsilon {
		t.Errorf("elapsed = %v, want 0.75", u.Elapsed())
	}
}

func TestUniformsElapsedNeverDecreases(t *testing.T) {
	u := NewUniforms(600, 400)
	u.Update(1)
	u.Update(-5)
	u.Update(0)
	if u.Elapsed() != 1 {
		t.Errorf("elapsed = %v, want 1 (negative dt ignored)", u.Elapsed())
	}
}

func TestUniformsResize(t *testing.T) {
	u := NewUniforms(600, 400)
	if err := u.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	w, h := u.Size()
	if w != 800 || h != 600 {
		t.Errorf("size = %vx%v", w, h)
	}

	for _, bad := range [][2]int{{0, 600}, {800, 0}, {-1, 600}, {0, 0}} {
		if err := u.Resize(bad[0], bad[1]); err == nil {
			t.Errorf("Resize(%d, %d) accepted", bad[0], bad[1])
		}
	}

	// A rejected resize leaves the previous size in effect.
	w, h = u.Size()
	if w != 800 || h != 600 {
		t.Errorf("size after rejected resize = %vx%v", w, h)
	}
}

func TestUniformsMapContents(t *testing.T) {
	u := NewUniforms(600, 400)
	u.Update(0.1)

	m := u.Map()
	elapsed, ok := m["Time"].(float32)
	if !ok {
		t.Fatalf("Time uniform = %v", m["Time"])
	}
	if elapsed != u.Elapsed() {
		t.Errorf("Time = %v, want %v", elapsed, u.Elapsed())
	}

	size, ok := m["ScreenSize"].([]float32)
	if !ok || len(size) != 2 {
		t.Fatalf("ScreenSize uniform = %v", m["ScreenSize"])
	}
	if size[0] != 600 || size[1] != 400 {
		t.Errorf("ScreenSize = %v", size)
	}
}

func TestUniformsMapTracksResize(t *testing.T) {
	u := NewUniforms(600, 400)
	u.Update(0)
	if err := u.Resize(1024, 768); err != nil {
		t.Fatal(err)
	}
	u.Update(0)

	size := u.Map()["ScreenSize"].([]float32)
	if size[0] != 1024 || size[1] != 768 {
		t.Errorf("ScreenSize after resize = %v", size)
	}
}

func TestNewUniformsPanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive size")
		}
	}()
	NewUniforms(0, 400)
}
