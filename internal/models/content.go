package models

import (
	"time"
)

type Step string

const (
	StepQueued     Step = "queued"
	StepProcessing Step = "processing"
	StepRegistered Step = "registered"
	StepFailed     Step = "failed"
)

// Fingerprint is the comparable form of a piece of content
type Fingerprint struct {
	Digest          string             `bson:"digest" json:"digest"`
	TermFrequencies map[string]float64 `bson:"term_frequencies" json:"term_frequencies"`
}

// ContentRecord is a registered work stored in MongoDB
type ContentRecord struct {
	ID            string      `bson:"_id" json:"id"`
	Title         string      `bson:"title" json:"title"`
	Owner         string      `bson:"owner" json:"owner"`
	OwnerID       string      `bson:"owner_id" json:"owner_id"`
	Category      string      `bson:"category" json:"category"`
	RawText       string      `bson:"raw_text" json:"raw_text"`
	Fingerprint   Fingerprint `bson:"fingerprint" json:"fingerprint"`
	CertificateID string      `bson:"certificate_id" json:"certificate_id"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
}

// ContentSummary is one row of an owner's content listing
type ContentSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	CertificateID string    `json:"certificate_id"`
	CreatedAt     time.Time `json:"created_at"`
	Preview       string    `json:"preview"`
}

type ContentPage struct {
	Content    []ContentSummary `json:"content"`
	Pagination Pagination       `json:"pagination"`
}

// ContentDetail is a registered work as shown to its owner. The fingerprint stays internal.
type ContentDetail struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Owner         string    `json:"owner"`
	Category      string    `json:"category"`
	RawText       string    `json:"raw_content"`
	CertificateID string    `json:"certificate_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Submission is a registration request, either from HTTP or the Redis stream
type Submission struct {
	SubmissionID string `json:"submission_id,omitempty"`
	Title        string `json:"title"`
	Content      string `json:"content" binding:"required"`
	Category     string `json:"category"`
	Owner        string `json:"owner"`
	OwnerID      string `json:"owner_id"`
}

// Registration is returned once a submission has been persisted
type Registration struct {
	ContentID     string    `json:"content_id"`
	CertificateID string    `json:"certificate_id"`
	Digest        string    `json:"fingerprint"`
	CreatedAt     time.Time `json:"created_at"`
}

// SubmitResponse acknowledges an async registration
type SubmitResponse struct {
	Step         Step   `json:"step"`
	SubmissionID string `json:"submission_id"`
}

// SubmissionStatus tracks an async registration through the stream
type SubmissionStatus struct {
	SubmissionID  string    `json:"submission_id"`
	OwnerID       string    `json:"owner_id,omitempty"`
	Step          Step      `json:"step"`
	ContentID     string    `json:"content_id,omitempty"`
	CertificateID string    `json:"certificate_id,omitempty"`
	Error         string    `json:"error,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VerifyRequest asks whether the caller owns a registered certificate
type VerifyRequest struct {
	CertificateID string `json:"certificate_id" binding:"required"`
	Content       string `json:"content" binding:"required"`
}

// Verification is the outcome of an ownership check
type Verification struct {
	CertificateID   string    `json:"certificate_id"`
	Title           string    `json:"title"`
	Owner           string    `json:"owner"`
	RegisteredAt    time.Time `json:"registered_date"`
	IsOwner         bool      `json:"is_owner"`
	ConfidenceScore float64   `json:"confidence_score"`
	Evidence        []string  `json:"evidence"`
	Recommendation  string    `json:"recommendation"`
}
