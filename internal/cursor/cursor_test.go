package cursor

import (
	"image"
	"testing"
)

func TestMapper_Interior(t *testing.T) {
	m := NewMapper(640, 480)

	// The center of the trimmed interior maps to the center of the display
	got := m.Map(image.Point{X: 320, Y: 240}, 1200, 700)
	if got.X != 600 || got.Y != 350 {
		t.Errorf("Map(center) = %v, want (600,350)", got)
	}
}

func TestMapper_MarginReachesEdges(t *testing.T) {
	m := NewMapper(640, 480)

	// At the margin boundary the cursor is already at the display origin
	got := m.Map(image.Point{X: 100, Y: 100}, 1200, 700)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("Map(margin corner) = %v, want (0,0)", got)
	}

	got = m.Map(image.Point{X: 540, Y: 380}, 1200, 700)
	if got.X != 1200 || got.Y != 700 {
		t.Errorf("Map(opposite margin corner) = %v, want (1200,700)", got)
	}
}

func TestMapper_ClampsOutside(t *testing.T) {
	m := NewMapper(640, 480)

	got := m.Map(image.Point{X: 10, Y: 470}, 1200, 700)
	if got.X != 0 {
		t.Errorf("Map() x = %d, want clamped to 0", got.X)
	}
	if got.Y != 700 {
		t.Errorf("Map() y = %d, want clamped to 700", got.Y)
	}
}

func TestMapper_Monotonic(t *testing.T) {
	m := NewMapper(640, 480)

	prev := -1
	for x := 0; x <= 640; x += 16 {
		got := m.Map(image.Point{X: x, Y: 240}, 1200, 700)
		if got.X < prev {
			t.Fatalf("mapping not monotonic at x=%d: %d < %d", x, got.X, prev)
		}
		prev = got.X
	}
}

// A point already inside display bounds is unchanged by re-clamping.
func TestMapper_ClampIdempotent(t *testing.T) {
	m := NewMapper(640, 480)

	p := m.Map(image.Point{X: 400, Y: 200}, 1200, 700)
	if p.X < 0 || p.X > 1200 || p.Y < 0 || p.Y > 700 {
		t.Fatalf("mapped point %v outside display bounds", p)
	}

	clamped := image.Point{X: clampInt(p.X, 0, 1200), Y: clampInt(p.Y, 0, 700)}
	if clamped != p {
		t.Errorf("clamping an in-bounds point changed it: %v -> %v", p, clamped)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func TestSmoother_SeededAtOrigin(t *testing.T) {
	s := NewSmoother()
	if got := s.Current(); got.X != 0 || got.Y != 0 {
		t.Errorf("Current() before any update = %v, want origin", got)
	}
}

func TestSmoother_SingleStep(t *testing.T) {
	s := NewSmoother()

	got := s.Update(image.Point{X: 100, Y: 200})
	if got.X != 30 || got.Y != 60 {
		t.Errorf("Update() = %v, want (30,60) with alpha 0.3", got)
	}
}

// Repeated identical input converges geometrically with ratio 1-alpha.
func TestSmoother_Converges(t *testing.T) {
	s := NewSmoother()
	target := image.Point{X: 500, Y: 300}

	var got image.Point
	for i := 0; i < 50; i++ {
		got = s.Update(target)
	}

	if got.X < target.X-1 || got.X > target.X || got.Y < target.Y-1 || got.Y > target.Y {
		t.Errorf("smoothed position after 50 ticks = %v, want ~%v", got, target)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother()
	s.Update(image.Point{X: 400, Y: 400})
	s.Reset()

	if got := s.Current(); got.X != 0 || got.Y != 0 {
		t.Errorf("Current() after Reset = %v, want origin", got)
	}
}

// State persists across skipped updates: a no-hand tick leaves the
// accumulator untouched.
func TestSmoother_HoldsBetweenUpdates(t *testing.T) {
	s := NewSmoother()
	want := s.Update(image.Point{X: 100, Y: 100})

	// No update happens here; Current must keep reporting the same point
	for i := 0; i < 3; i++ {
		if got := s.Current(); got != want {
			t.Fatalf("Current() drifted without updates: %v != %v", got, want)
		}
	}
}
