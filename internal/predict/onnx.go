package predict

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/airpredict/internal/glyph"
)

// ONNXClassifier runs a character model exported to ONNX through the
// OpenCV DNN backend.
type ONNXClassifier struct {
	net gocv.Net
}

// LoadONNXClassifier loads a character model from an ONNX file.
func LoadONNXClassifier(path string) (*ONNXClassifier, error) {
	net := gocv.ReadNetFromONNX(path)
	if net.Empty() {
		return nil, fmt.Errorf("loading model %s: empty network", path)
	}
	return &ONNXClassifier{net: net}, nil
}

// Scores feeds the glyph through the network as a 1x1x28x28 blob and
// returns the raw output layer.
func (c *ONNXClassifier) Scores(t *glyph.Tensor) ([]float32, error) {
	img := gocv.NewMatWithSize(glyph.Size, glyph.Size, gocv.MatTypeCV32F)
	defer img.Close()
	for y := 0; y < glyph.Size; y++ {
		for x := 0; x < glyph.Size; x++ {
			img.SetFloatAt(y, x, t.At(x, y))
		}
	}

	blob := gocv.BlobFromImage(img, 1.0, image.Pt(glyph.Size, glyph.Size),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	c.net.SetInput(blob, "")
	out := c.net.Forward("")
	defer out.Close()

	return matRow(out), nil
}

// Close releases the network.
func (c *ONNXClassifier) Close() error {
	return c.net.Close()
}

// ONNXSequenceModel runs the next-word model through the same DNN backend.
// The model takes a fixed-length row of word ids and emits one score per
// vocabulary id.
type ONNXSequenceModel struct {
	net gocv.Net
}

// LoadONNXSequenceModel loads a sequence model from an ONNX file.
func LoadONNXSequenceModel(path string) (*ONNXSequenceModel, error) {
	net := gocv.ReadNetFromONNX(path)
	if net.Empty() {
		return nil, fmt.Errorf("loading model %s: empty network", path)
	}
	return &ONNXSequenceModel{net: net}, nil
}

// Next scores every vocabulary id as the continuation of seq.
func (m *ONNXSequenceModel) Next(seq []int) ([]float32, error) {
	if len(seq) != MaxSequence {
		return nil, fmt.Errorf("sequence length %d, model takes %d", len(seq), MaxSequence)
	}

	in := gocv.NewMatWithSize(1, MaxSequence, gocv.MatTypeCV32F)
	defer in.Close()
	for i, id := range seq {
		in.SetFloatAt(0, i, float32(id))
	}

	m.net.SetInput(in, "")
	out := m.net.Forward("")
	defer out.Close()

	return matRow(out), nil
}

// Close releases the network.
func (m *ONNXSequenceModel) Close() error {
	return m.net.Close()
}

// matRow copies the first row of a 2D float output Mat.
func matRow(m gocv.Mat) []float32 {
	n := m.Cols()
	if n <= 0 {
		n = int(m.Total())
	}
	row := make([]float32, n)
	for i := 0; i < n; i++ {
		row[i] = m.GetFloatAt(0, i)
	}
	return row
}
