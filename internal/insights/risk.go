package insights

import (
	"math"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

// AssessRisk derives the risk tier and score from the match level
func AssessRisk(score float64, level models.MatchLevel) models.RiskAssessment {
	switch level {
	case models.MatchHigh:
		return models.RiskAssessment{
			Level: models.RiskCritical,
			Score: math.Min(95, 70+score*30),
			Factors: []string{
				"High similarity score indicates substantial copying",
				"Exact or near-exact matches detected",
				"Potential for copyright infringement claims",
				"Risk of legal action or takedown requests",
			},
			Mitigation: []string{
				"Verify ownership and authorization immediately",
				"Document independent creation if applicable",
				"Seek legal counsel before publication",
				"Consider substantial revision or removal",
			},
		}
	case models.MatchPartial:
		return models.RiskAssessment{
			Level: models.RiskModerate,
			Score: math.Min(65, 30+score*50),
			Factors: []string{
				"Moderate similarity suggests derivative elements",
				"Some shared content or structural patterns",
				"Potential fair use or citation issues",
			},
			Mitigation: []string{
				"Review and add proper citations if needed",
				"Ensure compliance with fair use guidelines",
				"Consider adding original commentary or analysis",
				"Document sources and inspiration",
			},
		}
	default:
		return models.RiskAssessment{
			Level: models.RiskLow,
			Score: math.Min(25, score*50),
			Factors: []string{
				"Minimal similarity to existing works",
				"Content appears largely original",
				"Low risk of copyright issues",
			},
			Mitigation: []string{
				"Register content to protect ownership",
				"Add copyright notices and metadata",
				"Monitor for unauthorized use",
			},
		}
	}
}
