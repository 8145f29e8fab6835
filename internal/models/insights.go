package models

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskCritical RiskLevel = "Critical"
)

// Insights is the human-readable narrative of a detection
type Insights struct {
	Summary         string           `json:"summary"`
	Explanation     string           `json:"explanation"`
	Recommendations []string         `json:"recommendations"`
	SourceAnalysis  []SourceAnalysis `json:"source_analysis"`
}

type SourceAnalysis struct {
	Rank          int              `json:"rank"`
	Title         string           `json:"title"`
	Owner         string           `json:"owner"`
	Similarity    string           `json:"similarity"`
	Breakdown     *SourceBreakdown `json:"breakdown,omitempty"`
	CertificateID string           `json:"certificate_id,omitempty"`
	URL           string           `json:"url,omitempty"`
	Analysis      string           `json:"analysis"`
}

// SourceBreakdown is a Breakdown formatted for display
type SourceBreakdown struct {
	Semantic   string `json:"semantic"`
	Structural string `json:"structural"`
	Hash       string `json:"hash"`
}

type RiskAssessment struct {
	Level      RiskLevel `json:"level"`
	Score      float64   `json:"score"`
	Factors    []string  `json:"factors"`
	Mitigation []string  `json:"mitigation"`
}
