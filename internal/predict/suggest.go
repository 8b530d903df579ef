package predict

import (
	"fmt"
	"sort"
)

// MaxSequence is the fixed input window of the sequence model. Shorter
// histories are left-padded with the padding id, longer ones keep only
// the most recent words.
const MaxSequence = 5

// DefaultSuggestions is how many candidates Suggest returns.
const DefaultSuggestions = 3

// SequenceModel scores every vocabulary id as the next word for a fixed
// length id sequence.
type SequenceModel interface {
	Next(seq []int) ([]float32, error)
	Close() error
}

// Suggester produces next-word candidates from the sentence so far.
type Suggester struct {
	model     SequenceModel
	tokenizer *Tokenizer
}

// NewSuggester creates a Suggester over a sequence model and its
// vocabulary.
func NewSuggester(model SequenceModel, tokenizer *Tokenizer) *Suggester {
	return &Suggester{model: model, tokenizer: tokenizer}
}

// Suggest returns up to n next-word candidates for the given word history,
// best first. Out-of-vocabulary history words encode as padding; candidate
// ids with no vocabulary word are skipped.
func (s *Suggester) Suggest(words []string, n int) ([]string, error) {
	seq := make([]int, MaxSequence)
	if len(words) > MaxSequence {
		words = words[len(words)-MaxSequence:]
	}
	for i, w := range words {
		id, ok := s.tokenizer.Encode(w)
		if !ok {
			id = 0
		}
		seq[MaxSequence-len(words)+i] = id
	}

	scores, err := s.model.Next(seq)
	if err != nil {
		return nil, fmt.Errorf("scoring next word: %w", err)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]string, 0, n)
	for _, id := range order {
		if len(out) == n {
			break
		}
		if w, ok := s.tokenizer.Word(id); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// Close releases the underlying model.
func (s *Suggester) Close() error {
	return s.model.Close()
}
