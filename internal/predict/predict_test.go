package predict

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ayusman/airpredict/internal/glyph"
)

func TestLabels_Alphabet(t *testing.T) {
	labels, err := Labels(ModeAlphabet)
	if err != nil {
		t.Fatalf("Labels() error = %v", err)
	}
	if len(labels) != 26 || labels[0] != "A" || labels[25] != "Z" {
		t.Errorf("alphabet labels = %v", labels)
	}
}

func TestLabels_Digit(t *testing.T) {
	labels, err := Labels(ModeDigit)
	if err != nil {
		t.Fatalf("Labels() error = %v", err)
	}
	if len(labels) != 10 || labels[0] != "0" || labels[9] != "9" {
		t.Errorf("digit labels = %v", labels)
	}
}

func TestRecognizer_Argmax(t *testing.T) {
	scores := make([]float32, 26)
	scores[7] = 0.9 // H
	r := NewRecognizer(map[Mode]Classifier{
		ModeAlphabet: &MockClassifier{ScoresOut: scores},
	})

	pred, err := r.Recognize(ModeAlphabet, &glyph.Tensor{})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if pred.Label != "H" || pred.Confidence != 0.9 {
		t.Errorf("Recognize() = %+v, want H at 0.9", pred)
	}
}

// A tied maximum resolves to the lowest label index.
func TestRecognizer_TieBreaksLow(t *testing.T) {
	scores := make([]float32, 26)
	scores[2] = 0.5
	scores[10] = 0.5
	r := NewRecognizer(map[Mode]Classifier{
		ModeAlphabet: &MockClassifier{ScoresOut: scores},
	})

	pred, err := r.Recognize(ModeAlphabet, &glyph.Tensor{})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if pred.Label != "C" {
		t.Errorf("tie resolved to %q, want C", pred.Label)
	}
}

func TestRecognizer_ScoreCountMismatch(t *testing.T) {
	r := NewRecognizer(map[Mode]Classifier{
		ModeDigit: &MockClassifier{ScoresOut: make([]float32, 26)},
	})

	if _, err := r.Recognize(ModeDigit, &glyph.Tensor{}); !errors.Is(err, ErrLabelRange) {
		t.Errorf("26 scores under digit mode: error = %v, want ErrLabelRange", err)
	}
}

func TestRecognizer_UnknownMode(t *testing.T) {
	r := NewRecognizer(nil)
	if _, err := r.Recognize(ModeAlphabet, &glyph.Tensor{}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}

func TestRecognizer_ClassifierError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRecognizer(map[Mode]Classifier{
		ModeDigit: &MockClassifier{Err: boom},
	})

	if _, err := r.Recognize(ModeDigit, &glyph.Tensor{}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped classifier error", err)
	}
}

func testTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := ParseTokenizer([]byte(`{"the":1,"cat":2,"sat":3,"on":4,"mat":5,"dog":6,"ran":7}`))
	if err != nil {
		t.Fatalf("ParseTokenizer() error = %v", err)
	}
	return tok
}

func TestTokenizer_CaseFolding(t *testing.T) {
	tok := testTokenizer(t)

	id, ok := tok.Encode("  The ")
	if !ok || id != 1 {
		t.Errorf("Encode(\"  The \") = %d, %v, want 1, true", id, ok)
	}
	if _, ok := tok.Encode("zebra"); ok {
		t.Error("out-of-vocabulary word should not encode")
	}
}

func TestTokenizer_PaddingIDUnmapped(t *testing.T) {
	tok := testTokenizer(t)
	if w, ok := tok.Word(0); ok {
		t.Errorf("Word(0) = %q, padding id must stay unmapped", w)
	}
}

func TestSuggester_TopThree(t *testing.T) {
	tok := testTokenizer(t)
	scores := make([]float32, 8)
	scores[3] = 0.9 // sat
	scores[7] = 0.6 // ran
	scores[1] = 0.3 // the
	model := &MockSequenceModel{ScoresOut: scores}

	got, err := NewSuggester(model, tok).Suggest([]string{"the", "cat"}, 3)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := []string{"sat", "ran", "the"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggester_LeftPadsShortHistory(t *testing.T) {
	tok := testTokenizer(t)
	model := &MockSequenceModel{ScoresOut: make([]float32, 8)}

	if _, err := NewSuggester(model, tok).Suggest([]string{"the", "cat"}, 3); err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := []int{0, 0, 0, 1, 2}
	if !reflect.DeepEqual(model.LastSeq, want) {
		t.Errorf("model saw %v, want %v", model.LastSeq, want)
	}
}

func TestSuggester_TruncatesLongHistory(t *testing.T) {
	tok := testTokenizer(t)
	model := &MockSequenceModel{ScoresOut: make([]float32, 8)}

	words := []string{"the", "cat", "sat", "on", "the", "mat"}
	if _, err := NewSuggester(model, tok).Suggest(words, 3); err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := []int{2, 3, 4, 1, 5}
	if !reflect.DeepEqual(model.LastSeq, want) {
		t.Errorf("model saw %v, want most recent %d ids %v", model.LastSeq, MaxSequence, want)
	}
}

// The padding id scores high but has no word, so it is skipped rather
// than surfaced.
func TestSuggester_SkipsUnmappedIDs(t *testing.T) {
	tok := testTokenizer(t)
	scores := make([]float32, 8)
	scores[0] = 1.0
	scores[2] = 0.5
	model := &MockSequenceModel{ScoresOut: scores}

	got, err := NewSuggester(model, tok).Suggest(nil, 1)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 1 || got[0] != "cat" {
		t.Errorf("Suggest() = %v, want [cat]", got)
	}
}
