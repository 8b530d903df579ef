package glyph

import (
	"image"
	"testing"
)

func TestNormalize_EmptyCanvas(t *testing.T) {
	canvas := Rasterize(nil, 400, 400)
	defer canvas.Close()

	if _, err := Normalize(canvas); err != ErrEmptyGlyph {
		t.Errorf("Normalize(empty) error = %v, want ErrEmptyGlyph", err)
	}
}

func TestNormalize_Shape(t *testing.T) {
	stroke := []image.Point{{100, 100}, {300, 100}, {300, 300}, {100, 300}, {100, 100}}
	canvas := Rasterize(stroke, 400, 400)
	defer canvas.Close()

	tensor, err := Normalize(canvas)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if got := len(tensor.Pix()); got != Size*Size {
		t.Fatalf("tensor has %d values, want %d", got, Size*Size)
	}
	for i, v := range tensor.Pix() {
		if v < 0 || v > 1 {
			t.Fatalf("pixel %d = %f, outside [0,1]", i, v)
		}
	}
}

// The 4px frame must be empty regardless of where the ink sat on the
// canvas.
func TestNormalize_BorderIsEmpty(t *testing.T) {
	stroke := []image.Point{{10, 10}, {390, 390}}
	canvas := Rasterize(stroke, 400, 400)
	defer canvas.Close()

	tensor, err := Normalize(canvas)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for i := 0; i < Size; i++ {
		for b := 0; b < borderPad; b++ {
			if tensor.At(i, b) != 0 || tensor.At(i, Size-1-b) != 0 ||
				tensor.At(b, i) != 0 || tensor.At(Size-1-b, i) != 0 {
				t.Fatalf("ink in the border frame at ring %d", b)
			}
		}
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	stroke := []image.Point{{50, 200}, {200, 60}, {350, 200}, {200, 340}}

	a := Rasterize(stroke, 400, 400)
	defer a.Close()
	b := Rasterize(stroke, 400, 400)
	defer b.Close()

	ta, err := Normalize(a)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	tb, err := Normalize(b)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for i := range ta.Pix() {
		if ta.Pix()[i] != tb.Pix()[i] {
			t.Fatalf("same stroke normalized differently at pixel %d", i)
		}
	}
}

// A thin horizontal stroke is padded to a square before resizing, so it
// lands in the vertical middle of the tensor rather than being stretched
// to fill it.
func TestNormalize_SquarePadding(t *testing.T) {
	stroke := []image.Point{{50, 200}, {350, 200}}
	canvas := Rasterize(stroke, 400, 400)
	defer canvas.Close()

	tensor, err := Normalize(canvas)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	rowInk := func(y int) float32 {
		var sum float32
		for x := 0; x < Size; x++ {
			sum += tensor.At(x, y)
		}
		return sum
	}

	top, bottom, middle := float32(0), float32(0), float32(0)
	for y := borderPad; y < borderPad+6; y++ {
		top += rowInk(y)
	}
	for y := Size - borderPad - 6; y < Size-borderPad; y++ {
		bottom += rowInk(y)
	}
	for y := Size/2 - 3; y < Size/2+3; y++ {
		middle += rowInk(y)
	}

	if middle <= top || middle <= bottom {
		t.Errorf("horizontal stroke not centered: top=%f middle=%f bottom=%f",
			top, middle, bottom)
	}
}

func TestRasterize_SinglePoint(t *testing.T) {
	canvas := Rasterize([]image.Point{{200, 200}}, 400, 400)
	defer canvas.Close()

	if _, err := Normalize(canvas); err != nil {
		t.Errorf("a single dot should still normalize, got %v", err)
	}
}
