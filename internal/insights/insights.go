// Package insights turns a detection result into its narrative and risk
// assessment. Every function is pure.
package insights

import (
	"fmt"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

// MaxAnalyzedSources bounds the per-source analysis
const MaxAnalyzedSources = 5

const unknownOwner = "Unknown"

var recommendations = map[models.MatchLevel][]string{
	models.MatchHigh: {
		"Immediate action required: this content closely matches existing registered work",
		"Review the matched sources to verify that you have proper authorization",
		"Consider consulting a legal professional about potential copyright issues",
		"If this is your original work, register it immediately to establish ownership",
		"Document any evidence of independent creation or prior art",
	},
	models.MatchPartial: {
		"Caution advised: moderate similarity detected with existing content",
		"Review matched sections and consider revising or citing sources appropriately",
		"If using ideas from other works, ensure proper attribution and fair use",
		"Consider registering your work to protect your original contributions",
		"Monitor for future unauthorized use of your content",
	},
	models.MatchOriginal: {
		"Content appears original: consider registering it to protect your intellectual property",
		"Generate an ownership certificate to establish a creation timestamp",
		"Add watermarks or metadata to help track your content online",
		"Share your certificate ID when publishing to establish provenance",
		"Periodically check for unauthorized use of your content",
	},
}

// Generate builds the summary, explanation, recommendations and source analysis
func Generate(result models.DetectionResult) models.Insights {
	level := normalizeLevel(result.MatchLevel)
	count := len(result.MatchedSources)

	return models.Insights{
		Summary:         summary(result.SimilarityScore, level, count),
		Explanation:     explanation(result.SimilarityScore, level, count),
		Recommendations: append([]string(nil), recommendations[level]...),
		SourceAnalysis:  analyzeSources(result.MatchedSources),
	}
}

func summary(score float64, level models.MatchLevel, count int) string {
	pct := percent(score)
	switch level {
	case models.MatchHigh:
		return fmt.Sprintf("This content shows a high similarity (%s) to %d matched work(s). There is significant risk of copyright infringement.", pct, count)
	case models.MatchPartial:
		return fmt.Sprintf("This content shows moderate similarity (%s) to %d existing work(s). Some elements may be derivative of or inspired by them.", pct, count)
	default:
		return fmt.Sprintf("This content appears to be largely original with minimal similarity (%s) to existing works.", pct)
	}
}

func explanation(score float64, level models.MatchLevel, count int) string {
	pct := percent(score)
	text := "The similarity engine compared your content using semantic term analysis, structural comparison and cryptographic fingerprinting. "

	switch level {
	case models.MatchHigh:
		text += fmt.Sprintf("It measured a %s similarity score, a HIGH MATCH with %d work(s). ", pct, count)
		text += "This suggests substantial overlap in content, structure or exact phrasing. Possible causes are direct copying, " +
			"a derivative work without attribution, or your own previously registered content. "
		text += "Verify your ownership rights before publishing and seek legal counsel if needed."
	case models.MatchPartial:
		text += fmt.Sprintf("It measured a %s similarity score, a PARTIAL MATCH with %d work(s). ", pct, count)
		text += "This suggests some shared elements, themes or structure. Common causes include inspiration from existing works, " +
			"shared industry terminology, coincidence, or properly cited sources. "
		text += "Review the matched sources to ensure proper attribution and fair use."
	default:
		text += fmt.Sprintf("It measured a %s similarity score, indicating ORIGINAL content with minimal overlap. ", pct)
		text += "Your content appears to be largely unique and independently created. "
		text += "Registering it gives you a timestamped certificate of ownership for any future dispute."
	}

	return text
}

func analyzeSources(sources []models.CandidateMatch) []models.SourceAnalysis {
	n := min(len(sources), MaxAnalyzedSources)
	analysis := make([]models.SourceAnalysis, 0, n)

	for i := 0; i < n; i++ {
		src := sources[i]
		owner := src.Owner
		if owner == "" {
			owner = unknownOwner
		}

		entry := models.SourceAnalysis{
			Rank:          i + 1,
			Title:         src.Title,
			Owner:         owner,
			Similarity:    percent(src.SimilarityScore),
			CertificateID: src.CertificateID,
			URL:           src.URL,
			Analysis:      SourceNote(src),
		}
		if src.Breakdown != nil {
			hash := "No Match"
			if src.Breakdown.Hash == 1 {
				hash = "Exact Match"
			}
			entry.Breakdown = &models.SourceBreakdown{
				Semantic:   percent(src.Breakdown.Semantic),
				Structural: percent(src.Breakdown.Structural),
				Hash:       hash,
			}
		}
		analysis = append(analysis, entry)
	}

	return analysis
}

// SourceNote is the one-line qualitative note for a matched source
func SourceNote(src models.CandidateMatch) string {
	switch {
	case src.Breakdown != nil && src.Breakdown.Hash == 1:
		return "Exact cryptographic match detected: content is identical"
	case src.SimilarityScore >= 0.80:
		return "Very high similarity across semantic and structural dimensions"
	case src.SimilarityScore >= 0.60:
		return "Significant similarity in content structure and meaning"
	case src.SimilarityScore >= 0.40:
		return "Moderate similarity: shared themes or partial overlap"
	default:
		return "Minor similarity: likely coincidental or common elements"
	}
}

func percent(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}

func normalizeLevel(level models.MatchLevel) models.MatchLevel {
	switch level {
	case models.MatchHigh, models.MatchPartial:
		return level
	}
	return models.MatchOriginal
}
