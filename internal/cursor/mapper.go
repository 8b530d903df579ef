// Package cursor maps raw camera-space hand positions into display space
// and smooths them over time.
package cursor

import "image"

// DefaultMargin is the camera-edge margin in pixels. Tracking quality
// degrades near the frame edge, so the margin-trimmed interior of the
// camera frame is stretched over the whole display: the user reaches every
// screen edge without pushing the hand to the true camera edge.
const DefaultMargin = 100

// Mapper rescales camera pixel coordinates onto a display.
type Mapper struct {
	CamW   int
	CamH   int
	Margin int
}

// NewMapper creates a Mapper for the given camera working resolution with
// the default edge margin.
func NewMapper(camW, camH int) *Mapper {
	return &Mapper{CamW: camW, CamH: camH, Margin: DefaultMargin}
}

// Map rescales p from the margin-trimmed camera interior onto
// [0, displayW] x [0, displayH], clamping the result to display bounds.
// Mapping is monotonic per axis and idempotent under clamping.
func (m *Mapper) Map(p image.Point, displayW, displayH int) image.Point {
	return image.Point{
		X: rescale(p.X, m.Margin, m.CamW-m.Margin, displayW),
		Y: rescale(p.Y, m.Margin, m.CamH-m.Margin, displayH),
	}
}

// rescale maps v from [lo, hi] onto [0, out] and clamps to [0, out].
func rescale(v, lo, hi, out int) int {
	if hi <= lo {
		return 0
	}
	mapped := float64(v-lo) / float64(hi-lo) * float64(out)
	if mapped < 0 {
		return 0
	}
	if mapped > float64(out) {
		return out
	}
	return int(mapped)
}
