// Package glyph turns a completed ink stroke into the fixed-size grayscale
// tensor the character models consume.
package glyph

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// DefaultBrush is the ink line thickness in pixels.
const DefaultBrush = 5

// Rasterize renders a stroke onto a white single-channel canvas of the
// given size, black ink. Points are in canvas coordinates. The caller owns
// the returned Mat.
func Rasterize(stroke []image.Point, width, height int) gocv.Mat {
	canvas := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)

	ink := color.RGBA{A: 255}
	if len(stroke) == 1 {
		gocv.Circle(&canvas, stroke[0], DefaultBrush/2, ink, -1)
	}
	for i := 1; i < len(stroke); i++ {
		gocv.Line(&canvas, stroke[i-1], stroke[i], ink, DefaultBrush)
	}
	return canvas
}
