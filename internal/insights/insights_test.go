package insights

import (
	"fmt"
	"strings"
	"testing"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		level models.MatchLevel
		want  models.RiskLevel
		risk  float64
	}{
		{"high clamps at 95", 0.9, models.MatchHigh, models.RiskCritical, 95},
		{"high below clamp", 0.7, models.MatchHigh, models.RiskCritical, 91},
		{"partial", 0.5, models.MatchPartial, models.RiskModerate, 55},
		{"partial upper tier", 0.69, models.MatchPartial, models.RiskModerate, 64.5},
		{"original", 0.2, models.MatchOriginal, models.RiskLow, 10},
		{"original zero", 0, models.MatchOriginal, models.RiskLow, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			risk := AssessRisk(tc.score, tc.level)
			assert.Equal(t, tc.want, risk.Level)
			assert.InDelta(t, tc.risk, risk.Score, 1e-9)
			assert.NotEmpty(t, risk.Factors)
			assert.NotEmpty(t, risk.Mitigation)
		})
	}
}

func TestAssessRisk_Bounds(t *testing.T) {
	for i := 0; i <= 100; i++ {
		s := float64(i) / 100
		assert.LessOrEqual(t, AssessRisk(s, models.MatchHigh).Score, 95.0)
		assert.LessOrEqual(t, AssessRisk(s, models.MatchPartial).Score, 65.0)
		assert.LessOrEqual(t, AssessRisk(s, models.MatchOriginal).Score, 25.0)
	}
}

func TestGenerate_HighMatch(t *testing.T) {
	sources := make([]models.CandidateMatch, 0, 7)
	sources = append(sources, models.CandidateMatch{
		Title:           "Exact",
		Owner:           "Ada",
		SimilarityScore: 1.0,
		Breakdown:       &models.Breakdown{Hash: 1, Semantic: 1, Structural: 1},
		CertificateID:   "CERT-1",
	})
	for i := 0; i < 6; i++ {
		sources = append(sources, models.CandidateMatch{
			Title:           fmt.Sprintf("Near %d", i),
			SimilarityScore: 0.75,
			Breakdown:       &models.Breakdown{Semantic: 0.8, Structural: 0.655},
		})
	}

	ins := Generate(models.DetectionResult{
		SimilarityScore: 1.0,
		MatchLevel:      models.MatchHigh,
		MatchedSources:  sources,
	})

	assert.Contains(t, ins.Summary, "100.0%")
	assert.Contains(t, ins.Summary, "7 matched work(s)")
	assert.Contains(t, ins.Explanation, "HIGH MATCH")
	assert.Len(t, ins.Recommendations, 5)
	assert.True(t, strings.HasPrefix(ins.Recommendations[0], "Immediate action required"))

	require.Len(t, ins.SourceAnalysis, MaxAnalyzedSources)
	first := ins.SourceAnalysis[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "Ada", first.Owner)
	assert.Equal(t, "100.0%", first.Similarity)
	assert.Equal(t, "Exact Match", first.Breakdown.Hash)
	assert.Equal(t, "CERT-1", first.CertificateID)
	assert.Contains(t, first.Analysis, "Exact cryptographic match")

	second := ins.SourceAnalysis[1]
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, "Unknown", second.Owner)
	assert.Equal(t, "No Match", second.Breakdown.Hash)
	assert.Equal(t, "80.0%", second.Breakdown.Semantic)
	assert.Equal(t, "Significant similarity in content structure and meaning", second.Analysis)
}

func TestGenerate_OriginalWithoutSources(t *testing.T) {
	ins := Generate(models.DetectionResult{MatchLevel: models.MatchOriginal, MatchedSources: []models.CandidateMatch{}})

	assert.Contains(t, ins.Summary, "largely original")
	assert.Contains(t, ins.Explanation, "ORIGINAL")
	assert.Empty(t, ins.SourceAnalysis)
	assert.NotNil(t, ins.SourceAnalysis)
	assert.Len(t, ins.Recommendations, 5)
}

func TestGenerate_RecommendationsAreCopies(t *testing.T) {
	ins := Generate(models.DetectionResult{MatchLevel: models.MatchPartial})
	ins.Recommendations[0] = "mutated"

	again := Generate(models.DetectionResult{MatchLevel: models.MatchPartial})
	assert.NotEqual(t, "mutated", again.Recommendations[0])
}

func TestSourceNote_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.85, "Very high similarity"},
		{0.80, "Very high similarity"},
		{0.60, "Significant similarity"},
		{0.40, "Moderate similarity"},
		{0.39, "Minor similarity"},
	}
	for _, tc := range tests {
		note := SourceNote(models.CandidateMatch{SimilarityScore: tc.score})
		assert.True(t, strings.HasPrefix(note, tc.want), "score %v got %q", tc.score, note)
	}
}

func TestGenerate_ExternalSourcesWithoutBreakdown(t *testing.T) {
	ins := Generate(models.DetectionResult{
		SimilarityScore: 0.5,
		MatchLevel:      models.MatchPartial,
		MatchedSources: []models.CandidateMatch{
			{Source: models.SourceWeb, Title: "Blog", Owner: "example.com", SimilarityScore: 1.0, URL: "https://example.com/a"},
		},
	})

	require.Len(t, ins.SourceAnalysis, 1)
	assert.Nil(t, ins.SourceAnalysis[0].Breakdown)
	assert.Equal(t, "https://example.com/a", ins.SourceAnalysis[0].URL)
}
