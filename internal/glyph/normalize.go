package glyph

import (
	"errors"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Tensor geometry. The models were trained on MNIST-style input: a 20x20
// glyph centered inside a 28x28 field with a 4px empty border.
const (
	Size      = 28
	glyphBox  = 20
	borderPad = 4
)

// ErrEmptyGlyph is returned when the canvas holds no ink at all.
var ErrEmptyGlyph = errors.New("glyph: canvas has no ink")

// Tensor is a normalized 28x28 grayscale glyph with values in [0, 1],
// ink bright on a dark background, row-major.
type Tensor struct {
	pix [Size * Size]float32
}

// At returns the value at column x, row y.
func (t *Tensor) At(x, y int) float32 {
	return t.pix[y*Size+x]
}

// Pix returns the row-major pixel slice backing the tensor.
func (t *Tensor) Pix() []float32 {
	return t.pix[:]
}

// Normalize converts a rasterized canvas into a model-ready tensor:
// grayscale, inverted so ink is bright, cropped to the ink bounding box,
// padded square (odd remainder goes to the trailing side), resized to
// 20x20 with area interpolation, framed with a 4px border, and scaled
// to [0, 1].
func Normalize(canvas gocv.Mat) (*Tensor, error) {
	gray := gocv.NewMat()
	defer gray.Close()
	if canvas.Channels() > 1 {
		gocv.CvtColor(canvas, &gray, gocv.ColorBGRToGray)
	} else {
		canvas.CopyTo(&gray)
	}

	inv := gocv.NewMat()
	defer inv.Close()
	gocv.BitwiseNot(gray, &inv)

	bbox, ok := inkBounds(inv)
	if !ok {
		return nil, ErrEmptyGlyph
	}

	crop := inv.Region(bbox)
	defer crop.Close()

	side := bbox.Dx()
	if bbox.Dy() > side {
		side = bbox.Dy()
	}
	padX := side - bbox.Dx()
	padY := side - bbox.Dy()

	square := gocv.NewMat()
	defer square.Close()
	gocv.CopyMakeBorder(crop, &square,
		padY/2, padY-padY/2, padX/2, padX-padX/2,
		gocv.BorderConstant, color.RGBA{})

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(square, &small, image.Pt(glyphBox, glyphBox), 0, 0, gocv.InterpolationArea)

	framed := gocv.NewMat()
	defer framed.Close()
	gocv.CopyMakeBorder(small, &framed,
		borderPad, borderPad, borderPad, borderPad,
		gocv.BorderConstant, color.RGBA{})

	var t Tensor
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			t.pix[y*Size+x] = float32(framed.GetUCharAt(y, x)) / 255
		}
	}
	return &t, nil
}

// inkBounds returns the union bounding box of all external contours in the
// inverted canvas, or ok=false when there is no ink.
func inkBounds(inv gocv.Mat) (image.Rectangle, bool) {
	contours := gocv.FindContours(inv, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var bbox image.Rectangle
	found := false
	for i := 0; i < contours.Size(); i++ {
		r := gocv.BoundingRect(contours.At(i))
		if !found {
			bbox = r
			found = true
		} else {
			bbox = bbox.Union(r)
		}
	}
	return bbox, found
}
