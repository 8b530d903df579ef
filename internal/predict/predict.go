// Package predict wraps the character and next-word models behind small
// interfaces so the pipeline can run against mocks in tests.
package predict

import (
	"errors"
	"fmt"

	"github.com/ayusman/airpredict/internal/glyph"
)

// Mode selects which character model interprets a glyph.
type Mode string

const (
	ModeAlphabet Mode = "alphabet"
	ModeDigit    Mode = "digit"
)

// ErrUnknownMode is returned when no classifier is registered for a mode.
var ErrUnknownMode = errors.New("predict: unknown recognition mode")

// ErrLabelRange is returned when a model emits scores that do not line up
// with the mode's label set. The caller discards the glyph.
var ErrLabelRange = errors.New("predict: score outside label range")

// Classifier scores a normalized glyph against a fixed label set.
type Classifier interface {
	// Scores returns one raw score per label, in label order.
	Scores(t *glyph.Tensor) ([]float32, error)
	Close() error
}

// Labels returns the label set for a mode, in model output order.
func Labels(mode Mode) ([]string, error) {
	switch mode {
	case ModeAlphabet:
		labels := make([]string, 26)
		for i := range labels {
			labels[i] = string(rune('A' + i))
		}
		return labels, nil
	case ModeDigit:
		labels := make([]string, 10)
		for i := range labels {
			labels[i] = string(rune('0' + i))
		}
		return labels, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Prediction is one recognized character.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
}

// Recognizer routes glyphs to the classifier for the active mode and maps
// the argmax score to its label.
type Recognizer struct {
	classifiers map[Mode]Classifier
}

// NewRecognizer creates a Recognizer over the given per-mode classifiers.
func NewRecognizer(classifiers map[Mode]Classifier) *Recognizer {
	return &Recognizer{classifiers: classifiers}
}

// Recognize scores the glyph under the given mode. Ties on the maximum
// score resolve to the lowest label index.
func (r *Recognizer) Recognize(mode Mode, t *glyph.Tensor) (Prediction, error) {
	c, ok := r.classifiers[mode]
	if !ok {
		return Prediction{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	labels, err := Labels(mode)
	if err != nil {
		return Prediction{}, err
	}

	scores, err := c.Scores(t)
	if err != nil {
		return Prediction{}, fmt.Errorf("scoring glyph: %w", err)
	}
	if len(scores) != len(labels) {
		return Prediction{}, fmt.Errorf(
			"%w: model emitted %d scores for %d labels", ErrLabelRange, len(scores), len(labels))
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return Prediction{Label: labels[best], Confidence: scores[best]}, nil
}

// Close releases every registered classifier.
func (r *Recognizer) Close() error {
	var first error
	for _, c := range r.classifiers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
