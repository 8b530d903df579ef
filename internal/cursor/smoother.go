package cursor

import "image"

// DefaultAlpha is the smoothing factor. Lower is smoother but laggier.
const DefaultAlpha = 0.3

// Smoother applies an exponential moving average per axis. The accumulator
// belongs to the session, not the frame: it is seeded at zero when the
// session starts and survives ticks with no detected hand, which simply
// skip the update.
type Smoother struct {
	Alpha float64
	x, y  float64
}

// NewSmoother creates a Smoother with the default smoothing factor and the
// accumulator at the origin.
func NewSmoother() *Smoother {
	return &Smoother{Alpha: DefaultAlpha}
}

// Update folds a mapped point into the accumulator and returns the
// smoothed position: smoothed = alpha*mapped + (1-alpha)*previous.
func (s *Smoother) Update(p image.Point) image.Point {
	s.x = s.Alpha*float64(p.X) + (1-s.Alpha)*s.x
	s.y = s.Alpha*float64(p.Y) + (1-s.Alpha)*s.y
	return s.Current()
}

// Current returns the smoothed position without updating it.
func (s *Smoother) Current() image.Point {
	return image.Point{X: int(s.x), Y: int(s.y)}
}

// Reset returns the accumulator to the origin, as at session start.
func (s *Smoother) Reset() {
	s.x, s.y = 0, 0
}
