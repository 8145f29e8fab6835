package signals

import (
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/plagiarism"
)

// BuildResult classifies a signal with the same classifier as the corpus path
func BuildResult(sig models.SignalResult, cfg models.ThresholdConfig, source models.MatchSource) models.DetectionResult {
	reported := sig.Matches
	if len(reported) > plagiarism.MaxReportedMatches {
		reported = reported[:plagiarism.MaxReportedMatches]
	}
	if reported == nil {
		reported = []models.CandidateMatch{}
	}

	return models.DetectionResult{
		SimilarityScore:     sig.Score,
		MatchLevel:          plagiarism.Classify(sig.Score, &cfg),
		MatchedSources:      reported,
		TotalMatches:        len(sig.Matches),
		Source:              source,
		ExternalUnavailable: sig.Unavailable,
	}
}
