package capture

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// solidFrame builds a single-color BGR frame.
func solidFrame(w, h int, c color.RGBA) gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		h, w, gocv.MatTypeCV8UC3,
	)
	return mat
}

func TestActivityGate_FirstFrameActive(t *testing.T) {
	gate := NewActivityGate(1.0)
	defer gate.Close()

	frame := solidFrame(64, 48, color.RGBA{R: 128, G: 128, B: 128})
	defer frame.Close()

	active, _ := gate.Active(&frame)
	if !active {
		t.Error("first frame should report active (no baseline yet)")
	}
}

func TestActivityGate_StaticScene(t *testing.T) {
	gate := NewActivityGate(1.0)
	defer gate.Close()

	frame := solidFrame(64, 48, color.RGBA{R: 128, G: 128, B: 128})
	defer frame.Close()

	gate.Active(&frame)
	active, percent := gate.Active(&frame)
	if active {
		t.Errorf("identical frames should be inactive, got %f%% change", percent)
	}
}

func TestActivityGate_SceneChange(t *testing.T) {
	gate := NewActivityGate(1.0)
	defer gate.Close()

	dark := solidFrame(64, 48, color.RGBA{R: 20, G: 20, B: 20})
	defer dark.Close()
	bright := solidFrame(64, 48, color.RGBA{R: 220, G: 220, B: 220})
	defer bright.Close()

	gate.Active(&dark)
	active, percent := gate.Active(&bright)
	if !active {
		t.Errorf("full-frame change should be active, got %f%% change", percent)
	}
}

func TestActivityGate_Reset(t *testing.T) {
	gate := NewActivityGate(1.0)
	defer gate.Close()

	frame := solidFrame(64, 48, color.RGBA{R: 128, G: 128, B: 128})
	defer frame.Close()

	gate.Active(&frame)
	gate.Reset()

	active, _ := gate.Active(&frame)
	if !active {
		t.Error("first frame after Reset should report active")
	}
}

func TestActivityGate_PartialChange(t *testing.T) {
	gate := NewActivityGate(1.0)
	defer gate.Close()

	base := solidFrame(64, 48, color.RGBA{R: 30, G: 30, B: 30})
	defer base.Close()

	moved := base.Clone()
	defer moved.Close()
	gocv.Rectangle(&moved, image.Rect(0, 0, 16, 48), color.RGBA{R: 230, G: 230, B: 230, A: 0}, -1)

	gate.Active(&base)
	active, percent := gate.Active(&moved)
	if !active {
		t.Errorf("quarter-frame change should exceed a 1%% threshold, got %f%%", percent)
	}
}

func TestMockCamera_Playback(t *testing.T) {
	f1 := solidFrame(8, 8, color.RGBA{R: 10, G: 10, B: 10})
	defer f1.Close()
	f2 := solidFrame(8, 8, color.RGBA{R: 200, G: 200, B: 200})
	defer f2.Close()

	cam := NewMockCamera([]*gocv.Mat{&f1, &f2}, false)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("ReadFrame() after last frame should fail when loop is off")
	}
}

func TestMockCamera_NotOpen(t *testing.T) {
	cam := NewMockCamera(nil, false)
	if _, err := cam.ReadFrame(); err == nil {
		t.Error("ReadFrame() on a closed camera should fail")
	}
}
