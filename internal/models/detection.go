package models

import (
	"time"
)

// MatchSource tags where a candidate match came from
type MatchSource string

const (
	SourceRegistry MatchSource = "registry"
	SourceWeb      MatchSource = "web"
	SourceVideo    MatchSource = "video"
)

func ParseMatchSource(s string) (MatchSource, error) {
	switch MatchSource(s) {
	case "", SourceRegistry:
		return SourceRegistry, nil
	case SourceWeb:
		return SourceWeb, nil
	case SourceVideo:
		return SourceVideo, nil
	}
	return "", ErrInvalidInput
}

// Breakdown holds the per-metric scores of one registry comparison
type Breakdown struct {
	Hash       float64 `bson:"hash" json:"hash"`
	Semantic   float64 `bson:"semantic" json:"semantic"`
	Structural float64 `bson:"structural" json:"structural"`
}

// CandidateMatch is one scored comparison. Breakdown is set for registry
// matches only; URL and Snippet for web and video matches.
type CandidateMatch struct {
	Source          MatchSource `bson:"source" json:"source"`
	SourceID        string      `bson:"source_id,omitempty" json:"source_id,omitempty"`
	Title           string      `bson:"title" json:"title"`
	Owner           string      `bson:"owner" json:"owner"`
	Category        string      `bson:"category,omitempty" json:"category,omitempty"`
	SimilarityScore float64     `bson:"similarity_score" json:"similarity_score"`
	Breakdown       *Breakdown  `bson:"breakdown,omitempty" json:"breakdown,omitempty"`
	CertificateID   string      `bson:"certificate_id,omitempty" json:"certificate_id,omitempty"`
	URL             string      `bson:"url,omitempty" json:"url,omitempty"`
	Snippet         string      `bson:"snippet,omitempty" json:"snippet,omitempty"`
}

// DetectionResult is the canonical verdict shared by every signal source
type DetectionResult struct {
	SimilarityScore float64          `bson:"similarity_score" json:"similarity_score"`
	MatchLevel      MatchLevel       `bson:"match_level" json:"match_level"`
	MatchedSources  []CandidateMatch `bson:"matched_sources" json:"matched_sources"`
	TotalMatches    int              `bson:"total_matches" json:"total_matches"`
	Source          MatchSource      `bson:"source" json:"source"`

	// ExternalUnavailable is set when an external collaborator could not be reached
	ExternalUnavailable bool `bson:"external_unavailable,omitempty" json:"external_unavailable,omitempty"`
}

// DetectionRecord is a persisted detection
type DetectionRecord struct {
	ID              string    `bson:"_id" json:"detection_id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Title           string    `bson:"title,omitempty" json:"title,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	DetectionResult `bson:",inline"`
}

// DetectRequest is the body of a text detection request
type DetectRequest struct {
	Content string `json:"content" binding:"required"`
	Title   string `json:"title"`
	Source  string `json:"source"`
}

// DetectVideoRequest carries a video title, or the uploaded filename to derive one from
type DetectVideoRequest struct {
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// DetectResponse is a detection result with its narrative
type DetectResponse struct {
	DetectionID string `json:"detection_id"`
	DetectionResult
	Insights  Insights       `json:"insights"`
	Risk      RiskAssessment `json:"risk"`
	CreatedAt time.Time      `json:"created_at"`
}

// DetectionSummary is one row of a user's history
type DetectionSummary struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id,omitempty"`
	Source          MatchSource `json:"source"`
	SimilarityScore float64     `json:"similarity_score"`
	MatchLevel      MatchLevel  `json:"match_level"`
	MatchedCount    int         `json:"matched_count"`
	CreatedAt       time.Time   `json:"created_at"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

type DetectionHistory struct {
	Detections []DetectionSummary `json:"detections"`
	Pagination Pagination         `json:"pagination"`
}

// AnalyticsOverview summarises detections over the trailing week
type AnalyticsOverview struct {
	TotalContent           int64              `json:"total_content"`
	TotalCategories        int64              `json:"total_categories"`
	TotalDetections        int64              `json:"total_detections"`
	DetectionsLast7Days    int                `json:"detections_last_7_days"`
	AverageSimilarityScore float64            `json:"average_similarity_score"`
	MatchLevelDistribution map[MatchLevel]int `json:"match_level_distribution"`
	DailyDetections        []DailyCount       `json:"daily_detections"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
