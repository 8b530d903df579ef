package session

import "strings"

// SentenceBuffer accumulates recognized characters into a sentence. It is
// plain text state, owned by the pipeline goroutine like the rest of the
// session.
type SentenceBuffer struct {
	text []rune
}

// Append adds recognized text at the end.
func (b *SentenceBuffer) Append(s string) {
	b.text = append(b.text, []rune(s)...)
}

// Space inserts a word boundary. Consecutive spaces collapse: a space
// after a space or on an empty buffer is a no-op.
func (b *SentenceBuffer) Space() bool {
	if len(b.text) == 0 || b.text[len(b.text)-1] == ' ' {
		return false
	}
	b.text = append(b.text, ' ')
	return true
}

// Backspace removes the last character. Returns false on an empty buffer.
func (b *SentenceBuffer) Backspace() bool {
	if len(b.text) == 0 {
		return false
	}
	b.text = b.text[:len(b.text)-1]
	return true
}

// Clear empties the buffer.
func (b *SentenceBuffer) Clear() {
	b.text = b.text[:0]
}

// Text returns the sentence as typed so far.
func (b *SentenceBuffer) Text() string {
	return string(b.text)
}

// Words returns the completed and in-progress words, in order.
func (b *SentenceBuffer) Words() []string {
	return strings.Fields(string(b.text))
}
