// Package gesture classifies per-frame hand landmarks into the discrete
// interaction gestures that drive the air-writing state machine.
package gesture

import (
	"image"

	"github.com/ayusman/airpredict/internal/detector"
)

// Symbol is the discrete classification of a hand pose for one tick.
type Symbol string

const (
	// SymbolDraw means only the index finger is extended: the user is inking.
	SymbolDraw Symbol = "DRAW"
	// SymbolMove means an open palm: cursor travel, and the completion
	// signal for a draw run.
	SymbolMove Symbol = "MOVE"
	// SymbolPinch means thumb and index tips are touching: a click.
	SymbolPinch Symbol = "PINCH"
	// SymbolNone is any pose that matches no gesture.
	SymbolNone Symbol = "NONE"
)

// DefaultPinchThreshold is the thumb-index distance in pixels below which
// the pose reads as a pinch, calibrated at the 640px working width.
const DefaultPinchThreshold = 30.0

// Observation is the result of classifying one hand for one tick.
type Observation struct {
	Symbol Symbol

	// Cursor is the index fingertip in camera pixel space.
	Cursor image.Point

	// Pinch is the thumb/index midpoint in camera pixel space.
	// Only meaningful when Symbol is SymbolPinch.
	Pinch image.Point
}

// Classifier turns one hand's landmarks into a gesture symbol and raw
// cursor position. It is a pure per-tick function with no internal state.
type Classifier struct {
	// PinchThreshold is the thumb-index pixel distance below which the
	// pose classifies as PINCH.
	PinchThreshold float64
}

// NewClassifier returns a Classifier with the default pinch threshold.
func NewClassifier() *Classifier {
	return &Classifier{PinchThreshold: DefaultPinchThreshold}
}

// FingersUp reports whether the index, middle, ring, and pinky fingers are
// extended. A finger is up when its tip is above its PIP joint in image
// space (y decreases upward).
func FingersUp(h *detector.HandLandmarks) [4]bool {
	return [4]bool{
		h.Points[detector.IndexTip].Y < h.Points[detector.IndexPIP].Y,
		h.Points[detector.MiddleTip].Y < h.Points[detector.MiddlePIP].Y,
		h.Points[detector.RingTip].Y < h.Points[detector.RingPIP].Y,
		h.Points[detector.PinkyTip].Y < h.Points[detector.PinkyPIP].Y,
	}
}

// Classify maps one hand observation to a gesture symbol and cursor
// position for a frame of the given pixel size.
//
// Precedence is fixed: pinch geometry can coincidentally satisfy "index
// up", so thumb-index proximity is checked first. Then open palm (all four
// up) means MOVE, index alone means DRAW, anything else NONE.
func (c *Classifier) Classify(h *detector.HandLandmarks, frameW, frameH int) Observation {
	obs := Observation{
		Symbol: SymbolNone,
		Cursor: h.Pixel(detector.IndexTip, frameW, frameH),
	}

	if h.PixelDistance(detector.ThumbTip, detector.IndexTip, frameW) < c.PinchThreshold {
		obs.Symbol = SymbolPinch
		thumb := h.Points[detector.ThumbTip]
		index := h.Points[detector.IndexTip]
		obs.Pinch = image.Point{
			X: int((thumb.X + index.X) / 2 * float64(frameW)),
			Y: int((thumb.Y + index.Y) / 2 * float64(frameH)),
		}
		return obs
	}

	fingers := FingersUp(h)
	switch {
	case fingers[0] && fingers[1] && fingers[2] && fingers[3]:
		obs.Symbol = SymbolMove
	case fingers[0] && !fingers[1] && !fingers[2] && !fingers[3]:
		obs.Symbol = SymbolDraw
	}

	return obs
}
