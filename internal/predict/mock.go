package predict

import "github.com/ayusman/airpredict/internal/glyph"

// MockClassifier returns canned scores for tests.
type MockClassifier struct {
	ScoresOut []float32
	Err       error
	Calls     int
}

func (m *MockClassifier) Scores(t *glyph.Tensor) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ScoresOut, nil
}

func (m *MockClassifier) Close() error { return nil }

// MockSequenceModel returns canned next-word scores and records the last
// sequence it was asked about.
type MockSequenceModel struct {
	ScoresOut []float32
	Err       error
	LastSeq   []int
}

func (m *MockSequenceModel) Next(seq []int) ([]float32, error) {
	m.LastSeq = append([]int(nil), seq...)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ScoresOut, nil
}

func (m *MockSequenceModel) Close() error { return nil }
