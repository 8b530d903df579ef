package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Tokenizer maps between words and the integer ids the sequence model was
// trained on. Id 0 is reserved for padding and never maps to a word.
type Tokenizer struct {
	index   map[string]int
	inverse map[int]string
}

// LoadTokenizer reads a word-to-id vocabulary from a JSON object file.
func LoadTokenizer(path string) (*Tokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary: %w", err)
	}
	return ParseTokenizer(data)
}

// ParseTokenizer builds a Tokenizer from raw vocabulary JSON.
func ParseTokenizer(data []byte) (*Tokenizer, error) {
	var index map[string]int
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}

	inverse := make(map[int]string, len(index))
	for w, id := range index {
		inverse[id] = w
	}
	return &Tokenizer{index: index, inverse: inverse}, nil
}

// VocabSize returns the number of known words.
func (t *Tokenizer) VocabSize() int {
	return len(t.index)
}

// Encode maps a word to its id after case folding and trimming. ok is
// false for out-of-vocabulary words.
func (t *Tokenizer) Encode(word string) (int, bool) {
	id, ok := t.index[strings.ToLower(strings.TrimSpace(word))]
	return id, ok
}

// Word maps an id back to its word. ok is false for unmapped ids,
// including the padding id.
func (t *Tokenizer) Word(id int) (string, bool) {
	w, ok := t.inverse[id]
	return w, ok
}
