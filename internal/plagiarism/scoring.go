package plagiarism

import (
	"math"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

// Score is the outcome of comparing submitted content with one record
type Score struct {
	Overall   float64
	Breakdown models.Breakdown
}

// Round2 rounds half away from zero to two decimals
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// Calculate scores the input against a registered record. The record's
// fingerprint is taken as stored; only the input is fingerprinted by the caller.
// The overall score is weighted from unrounded components, then rounded.
func Calculate(input models.Fingerprint, inputText string, record models.ContentRecord, w models.Weights) Score {
	hash := HashSimilarity(input.Digest, record.Fingerprint.Digest)
	semantic := SemanticSimilarity(input.TermFrequencies, record.Fingerprint.TermFrequencies)
	structural := StructuralSimilarity(inputText, record.RawText)

	overall := hash*w.Hash + semantic*w.Semantic + structural*w.Structural

	return Score{
		Overall: Round2(overall),
		Breakdown: models.Breakdown{
			Hash:       Round2(hash),
			Semantic:   Round2(semantic),
			Structural: Round2(structural),
		},
	}
}
