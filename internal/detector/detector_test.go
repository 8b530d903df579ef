package detector

import (
	"testing"
)

func TestHandLandmarks_Pixel(t *testing.T) {
	var h HandLandmarks
	h.Points[IndexTip] = Point3D{X: 0.5, Y: 0.25, Z: 0}

	p := h.Pixel(IndexTip, 640, 480)
	if p.X != 320 || p.Y != 120 {
		t.Errorf("Pixel() = %v, want (320,120)", p)
	}
}

func TestHandLandmarks_PixelDistance(t *testing.T) {
	var h HandLandmarks
	h.Points[ThumbTip] = Point3D{X: 0.5, Y: 0.5, Z: 0}
	h.Points[IndexTip] = Point3D{X: 0.5, Y: 0.55, Z: 0}

	// 0.05 normalized on a 640px-wide frame is 32px
	d := h.PixelDistance(ThumbTip, IndexTip, 640)
	if d < 31.9 || d > 32.1 {
		t.Errorf("PixelDistance() = %f, want 32", d)
	}
}

func TestDrawPoseLandmarks_FingerStates(t *testing.T) {
	h := DrawPoseLandmarks()

	if h.Points[IndexTip].Y >= h.Points[IndexPIP].Y {
		t.Error("draw pose should have index tip above its PIP")
	}
	for _, pair := range [][2]int{
		{MiddleTip, MiddlePIP},
		{RingTip, RingPIP},
		{PinkyTip, PinkyPIP},
	} {
		if h.Points[pair[0]].Y < h.Points[pair[1]].Y {
			t.Errorf("draw pose should have landmark %d below its PIP", pair[0])
		}
	}

	// Thumb must be clear of the index tip so the pose does not read as pinch
	if d := h.PixelDistance(ThumbTip, IndexTip, 640); d < 60 {
		t.Errorf("draw pose thumb-index distance = %fpx, want >= 60", d)
	}
}

func TestPinchPoseLandmarks_ThumbIndexClose(t *testing.T) {
	h := PinchPoseLandmarks()

	if d := h.PixelDistance(ThumbTip, IndexTip, 640); d >= 30 {
		t.Errorf("pinch pose thumb-index distance = %fpx, want < 30", d)
	}
}

func TestOpenPalmLandmarks_AllFingersUp(t *testing.T) {
	h := OpenPalmLandmarks()

	pairs := [][2]int{
		{IndexTip, IndexPIP},
		{MiddleTip, MiddlePIP},
		{RingTip, RingPIP},
		{PinkyTip, PinkyPIP},
	}
	for _, pair := range pairs {
		if h.Points[pair[0]].Y >= h.Points[pair[1]].Y {
			t.Errorf("open palm should have landmark %d above its PIP", pair[0])
		}
	}
}

func TestHandAt_MovesIndexTip(t *testing.T) {
	h := HandAt(DrawPoseLandmarks(), 0.25, 0.75)

	tip := h.Points[IndexTip]
	if tip.X != 0.25 || tip.Y != 0.75 {
		t.Errorf("HandAt() index tip = (%f,%f), want (0.25,0.75)", tip.X, tip.Y)
	}

	// The pose must move rigidly: relative finger geometry is preserved
	orig := DrawPoseLandmarks()
	gotDY := h.Points[IndexTip].Y - h.Points[IndexPIP].Y
	wantDY := orig.Points[IndexTip].Y - orig.Points[IndexPIP].Y
	if gotDY != wantDY {
		t.Errorf("HandAt() changed tip-PIP offset: got %f, want %f", gotDY, wantDY)
	}
}

func TestMockDetector_Script(t *testing.T) {
	m := NewMockDetector()
	m.SetScript([][]HandLandmarks{
		{DrawPoseLandmarks()},
		{},
		{OpenPalmLandmarks()},
	})

	hands, err := m.Detect(nil)
	if err != nil || len(hands) != 1 {
		t.Fatalf("first Detect() = %d hands, %v; want 1 hand", len(hands), err)
	}

	hands, err = m.Detect(nil)
	if err != nil || len(hands) != 0 {
		t.Fatalf("second Detect() = %d hands, %v; want 0 hands", len(hands), err)
	}

	hands, err = m.Detect(nil)
	if err != nil || len(hands) != 1 {
		t.Fatalf("third Detect() = %d hands, %v; want 1 hand", len(hands), err)
	}

	// Exhausted script reports no hands rather than an error
	hands, err = m.Detect(nil)
	if err != nil || len(hands) != 0 {
		t.Fatalf("exhausted Detect() = %d hands, %v; want 0 hands", len(hands), err)
	}
}
