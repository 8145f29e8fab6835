package plagiarism

import (
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

// Classify maps a score to a match level. Lower bounds are inclusive and
// tiers are checked from High down. A nil config uses the defaults.
func Classify(score float64, cfg *models.ThresholdConfig) models.MatchLevel {
	thresholds := models.DefaultThresholds()
	if cfg != nil {
		thresholds = *cfg
	}

	switch {
	case score >= thresholds.High.MinScore:
		return models.MatchHigh
	case score >= thresholds.Partial.MinScore:
		return models.MatchPartial
	default:
		return models.MatchOriginal
	}
}
