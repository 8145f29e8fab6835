package signals

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxChunks is the number of sentences checked per text
	MaxChunks = 3

	minChunkLen     = 30
	minWholeTextLen = 10
)

// SplitChunks picks up to MaxChunks sentences longer than minChunkLen runes,
// evenly spaced through the text. When no sentence qualifies and the text is
// longer than minWholeTextLen runes, the whole text is the only chunk.
func SplitChunks(text string) []string {
	text = strings.TrimSpace(text)

	sentences := make([]string, 0)
	for _, s := range strings.FieldsFunc(text, isSentenceEnd) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minChunkLen {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 {
		if utf8.RuneCountInString(text) > minWholeTextLen {
			return []string{text}
		}
		return nil
	}

	if len(sentences) <= MaxChunks {
		return sentences
	}

	chunks := make([]string, 0, MaxChunks)
	for i := 0; i < MaxChunks; i++ {
		chunks = append(chunks, sentences[i*len(sentences)/MaxChunks])
	}
	return chunks
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}
