package plagiarism

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// HashSimilarity is 1 for equal digests and 0 otherwise
func HashSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}

// SemanticSimilarity is the cosine similarity of two term-frequency vectors.
// Absent keys count as zero; a zero-magnitude vector yields 0.
func SemanticSimilarity(a, b map[string]float64) float64 {
	var dot, magA, magB float64

	for term, va := range a {
		magA += va * va
		if vb, ok := b[term]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		magB += vb * vb
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	// float error can push identical vectors just past 1
	return math.Min(1, sim)
}

// StructuralSimilarity is 1 - lev(a, b) / max(len(a), len(b)) over the
// trimmed, lower-cased texts. Two empty texts are identical.
func StructuralSimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)

	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}
