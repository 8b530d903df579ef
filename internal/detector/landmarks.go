// Package detector provides hand landmark detection for the air-writing pipeline.
package detector

import (
	"image"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a single landmark in normalized image-plane coordinates
// (x, y in [0,1]) plus relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks for one detected hand
// in one frame. An observation is never mutated after detection.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Pixel converts the landmark at index i to pixel coordinates for a frame
// of the given size.
func (h *HandLandmarks) Pixel(i, frameW, frameH int) image.Point {
	p := h.Points[i]
	return image.Point{
		X: int(p.X * float64(frameW)),
		Y: int(p.Y * float64(frameH)),
	}
}

// PixelDistance returns the image-plane distance in pixels between
// landmarks a and b. Frame width is the scale reference, so distance
// thresholds calibrated at one resolution carry over to another.
func (h *HandLandmarks) PixelDistance(a, b, frameW int) float64 {
	pa, pb := h.Points[a], h.Points[b]
	return math.Hypot(pa.X-pb.X, pa.Y-pb.Y) * float64(frameW)
}
