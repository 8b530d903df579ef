package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It either returns a fixed result or plays back a scripted sequence of
// per-frame results, one entry per Detect call.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	script [][]HandLandmarks
	pos    int
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the fixed hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.script = nil
}

// SetScript sets a per-frame sequence of results. Each Detect call consumes
// one entry; after the script is exhausted Detect reports no hands.
func (m *MockDetector) SetScript(script [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = script
	m.pos = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured hands, the next script entry, or the
// configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.script != nil {
		if m.pos >= len(m.script) {
			return nil, nil
		}
		hands := m.script[m.pos]
		m.pos++
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// DrawPoseLandmarks returns a hand with only the index finger extended,
// middle/ring/pinky curled, and the thumb well clear of the index tip.
// Classifies as DRAW.
func DrawPoseLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb tucked toward the palm, away from the index tip
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.72, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.68, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.66, Z: 0.0}

	// Index finger extended upward (tip above PIP; y decreases going up)
	landmarks.Points[IndexMCP] = Point3D{X: 0.52, Y: 0.66, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.52, Y: 0.54, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.44, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.52, Y: 0.34, Z: 0.0}

	// Middle finger curled (tip below PIP)
	landmarks.Points[MiddleMCP] = Point3D{X: 0.48, Y: 0.64, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.48, Y: 0.58, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.64, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.46, Y: 0.68, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.44, Y: 0.66, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.44, Y: 0.60, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.43, Y: 0.66, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.70, Z: -0.02}

	// Pinky curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.64, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.39, Y: 0.70, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.74, Z: -0.02}

	return landmarks
}

// OpenPalmLandmarks returns a hand with all four fingers extended.
// Classifies as MOVE.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb extended to the side, clear of the index tip
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// PinchPoseLandmarks returns a hand with the thumb tip touching the index
// tip. The index finger still reads as "up", which is exactly the case the
// pinch-first precedence exists for. Classifies as PINCH.
func PinchPoseLandmarks() HandLandmarks {
	landmarks := DrawPoseLandmarks()

	// Bring the thumb tip within a few pixels of the index tip
	landmarks.Points[ThumbIP] = Point3D{X: 0.54, Y: 0.42, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.525, Y: 0.345, Z: 0.0}

	return landmarks
}

// FistLandmarks returns a hand with all fingers curled and the thumb
// wrapped across the knuckles, away from the index tip. Classifies as NONE.
func FistLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.72, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.64, Y: 0.70, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.68, Y: 0.70, Z: 0.0}

	landmarks.Points[IndexMCP] = Point3D{X: 0.52, Y: 0.66, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.52, Y: 0.60, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.51, Y: 0.66, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.70, Z: -0.02}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.48, Y: 0.64, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.48, Y: 0.58, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.64, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.46, Y: 0.68, Z: -0.02}

	landmarks.Points[RingMCP] = Point3D{X: 0.44, Y: 0.66, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.44, Y: 0.60, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.43, Y: 0.66, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.70, Z: -0.02}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.64, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.39, Y: 0.70, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.74, Z: -0.02}

	return landmarks
}

// HandAt shifts a pose fixture so the index fingertip lands at the given
// normalized position. Used to script stroke trajectories in tests.
func HandAt(pose HandLandmarks, x, y float64) HandLandmarks {
	dx := x - pose.Points[IndexTip].X
	dy := y - pose.Points[IndexTip].Y
	for i := range pose.Points {
		pose.Points[i].X += dx
		pose.Points[i].Y += dy
	}
	return pose
}
