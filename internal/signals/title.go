package signals

import (
	"strings"
	"unicode/utf8"
)

// Title similarity constants
const (
	TitleExact             = 1.0
	TitleCandidateHasQuery = 0.9
	TitleQueryHasCandidate = 0.85
	TitleOverlapWeight     = 0.7
	TitleFloor             = 0.1

	// words of this many runes or fewer are ignored by the overlap ratio
	titleMinWordLen = 3
)

// TitleSimilarity scores a candidate video title against the query title.
// Case-insensitive equality scores TitleExact; containment scores
// TitleCandidateHasQuery or TitleQueryHasCandidate; otherwise the share of
// long query words found in the candidate, scaled by TitleOverlapWeight.
// Results with no overlap still score TitleFloor since the search returned them.
func TitleSimilarity(query, candidate string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(candidate))

	switch {
	case q == c:
		return TitleExact
	case strings.Contains(c, q):
		return TitleCandidateHasQuery
	case strings.Contains(q, c):
		return TitleQueryHasCandidate
	}

	queryWords := longWords(q)
	candidateWords := longWords(c)

	candidateSet := make(map[string]struct{}, len(candidateWords))
	for _, w := range candidateWords {
		candidateSet[w] = struct{}{}
	}

	common := 0
	for _, w := range queryWords {
		if _, ok := candidateSet[w]; ok {
			common++
		}
	}

	if common == 0 {
		return TitleFloor
	}

	return float64(common) / float64(max(len(queryWords), len(candidateWords))) * TitleOverlapWeight
}

func longWords(s string) []string {
	fields := strings.Fields(s)
	words := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > titleMinWordLen {
			words = append(words, f)
		}
	}
	return words
}
