package preprocess

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/metrics"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/plagiarism"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultTitle = "Untitled Content"
	unknownOwner = "Unknown"

	ownerMatchConfidence       = 95
	fingerprintMatchConfidence = 50
	verifiedConfidence         = 90
	partialConfidence          = 50

	evidenceOwnerMatch       = "User ID matches registered owner"
	evidenceFingerprintMatch = "Content fingerprint exact match"

	recommendVerified   = "Ownership verified with high confidence. You are the registered owner of this content."
	recommendPartial    = "Partial ownership evidence found. Additional verification may be required."
	recommendUnverified = "Ownership cannot be verified. This content may belong to another creator."

	defaultContentLimit = 20
	maxContentLimit     = 100
	previewLength       = 200
)

// registration paths, used as metric labels
const (
	pathSync   = "sync"
	pathStream = "stream"
)

// ContentStore persists registered works
type ContentStore interface {
	Insert(ctx context.Context, record *models.ContentRecord) error
	FindByCertificateID(ctx context.Context, certificateID string) (*models.ContentRecord, error)
	FindByID(ctx context.Context, id string) (*models.ContentRecord, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]models.ContentRecord, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// Enqueuer hands a submission to the async registration stream
type Enqueuer interface {
	Enqueue(ctx context.Context, submission *models.Submission) error
}

type Service struct {
	store  ContentStore
	status StatusStore
	queue  Enqueuer
}

// NewService wires registration. status and queue may be nil when async
// registration is not available.
func NewService(store ContentStore, status StatusStore, queue Enqueuer) *Service {
	return &Service{
		store:  store,
		status: status,
		queue:  queue,
	}
}

// Register fingerprints the submission, issues a certificate ID and stores the record
func (s *Service) Register(ctx context.Context, submission *models.Submission) (*models.Registration, error) {
	return s.register(ctx, submission, pathSync)
}

func (s *Service) register(ctx context.Context, submission *models.Submission, path string) (*models.Registration, error) {
	fingerprint, err := plagiarism.Fingerprint(submission.Content)
	if err != nil {
		metrics.RegistrationCount.WithLabelValues(path, "invalid").Inc()
		return nil, err
	}

	certificateID, err := plagiarism.CertificateID()
	if err != nil {
		metrics.RegistrationCount.WithLabelValues(path, "error").Inc()
		return nil, err
	}

	title := strings.TrimSpace(submission.Title)
	if title == "" {
		title = defaultTitle
	}

	record := &models.ContentRecord{
		ID:            uuid.NewString(),
		Title:         title,
		Owner:         submission.Owner,
		OwnerID:       submission.OwnerID,
		Category:      submission.Category,
		RawText:       submission.Content,
		Fingerprint:   fingerprint,
		CertificateID: certificateID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, record); err != nil {
		metrics.RegistrationCount.WithLabelValues(path, "error").Inc()
		return nil, fmt.Errorf("failed to store content: %w", err)
	}

	metrics.RegistrationCount.WithLabelValues(path, "registered").Inc()
	log.Info().
		Str("content_id", record.ID).
		Str("certificate_id", certificateID).
		Str("path", path).
		Msg("Content registered")

	return &models.Registration{
		ContentID:     record.ID,
		CertificateID: certificateID,
		Digest:        fingerprint.Digest,
		CreatedAt:     record.CreatedAt,
	}, nil
}

// Submit validates the submission and queues it for async registration
func (s *Service) Submit(ctx context.Context, submission *models.Submission) (*models.SubmitResponse, error) {
	if strings.TrimSpace(submission.Content) == "" {
		return nil, fmt.Errorf("%w: content is empty", models.ErrInvalidInput)
	}
	if s.queue == nil {
		return nil, errors.New("registration queue not configured")
	}

	submission.SubmissionID = uuid.NewString()
	s.setStatus(ctx, models.SubmissionStatus{
		SubmissionID: submission.SubmissionID,
		OwnerID:      submission.OwnerID,
		Step:         models.StepQueued,
	})

	if err := s.queue.Enqueue(ctx, submission); err != nil {
		s.setStatus(ctx, models.SubmissionStatus{
			SubmissionID: submission.SubmissionID,
			OwnerID:      submission.OwnerID,
			Step:         models.StepFailed,
			Error:        "failed to queue submission",
		})
		return nil, fmt.Errorf("failed to enqueue submission: %w", err)
	}

	return &models.SubmitResponse{Step: models.StepQueued, SubmissionID: submission.SubmissionID}, nil
}

// ProcessSubmission registers a submission read from the stream and records its progress
func (s *Service) ProcessSubmission(ctx context.Context, submission *models.Submission) error {
	s.setStatus(ctx, models.SubmissionStatus{
		SubmissionID: submission.SubmissionID,
		OwnerID:      submission.OwnerID,
		Step:         models.StepProcessing,
	})

	registration, err := s.register(ctx, submission, pathStream)
	if err != nil {
		s.setStatus(ctx, models.SubmissionStatus{
			SubmissionID: submission.SubmissionID,
			OwnerID:      submission.OwnerID,
			Step:         models.StepFailed,
			Error:        err.Error(),
		})
		return err
	}

	s.setStatus(ctx, models.SubmissionStatus{
		SubmissionID:  submission.SubmissionID,
		OwnerID:       submission.OwnerID,
		Step:          models.StepRegistered,
		ContentID:     registration.ContentID,
		CertificateID: registration.CertificateID,
	})
	return nil
}

// SubmissionStatus returns the progress of a submission to its submitter or
// an admin. Other callers get models.ErrNotFound.
func (s *Service) SubmissionStatus(ctx context.Context, submissionID, userID string, admin bool) (*models.SubmissionStatus, error) {
	if s.status == nil {
		return nil, fmt.Errorf("%w: submission %s", models.ErrNotFound, submissionID)
	}

	status, err := GetStatus(ctx, s.status, submissionID)
	if err != nil {
		return nil, err
	}
	if !admin && status.OwnerID != userID {
		return nil, fmt.Errorf("%w: submission %s", models.ErrNotFound, submissionID)
	}
	return status, nil
}

// status writes are best effort; registration does not depend on them
func (s *Service) setStatus(ctx context.Context, status models.SubmissionStatus) {
	if s.status == nil || status.SubmissionID == "" {
		return
	}
	if err := UpdateStatus(ctx, s.status, status); err != nil {
		log.Warn().Err(err).Str("submission_id", status.SubmissionID).Msg("Submission status not updated")
	}
}

// Verify checks the caller's claim on a certificate. A matching owner ID is
// strong evidence; an exact fingerprint match of the supplied content adds to it.
func (s *Service) Verify(ctx context.Context, req *models.VerifyRequest, userID string) (*models.Verification, error) {
	digest, err := plagiarism.Hash(req.Content)
	if err != nil {
		return nil, err
	}

	record, err := s.store.FindByCertificateID(ctx, req.CertificateID)
	if err != nil {
		return nil, err
	}

	owner := record.Owner
	if owner == "" {
		owner = unknownOwner
	}

	v := &models.Verification{
		CertificateID: record.CertificateID,
		Title:         record.Title,
		Owner:         owner,
		RegisteredAt:  record.CreatedAt,
		Evidence:      []string{},
	}

	if userID != "" && record.OwnerID == userID {
		v.IsOwner = true
		v.ConfidenceScore = ownerMatchConfidence
		v.Evidence = append(v.Evidence, evidenceOwnerMatch)
	}

	if digest == record.Fingerprint.Digest {
		v.ConfidenceScore = math.Min(100, v.ConfidenceScore+fingerprintMatchConfidence)
		v.Evidence = append(v.Evidence, evidenceFingerprintMatch)
	}

	switch {
	case v.IsOwner && v.ConfidenceScore >= verifiedConfidence:
		v.Recommendation = recommendVerified
	case v.ConfidenceScore >= partialConfidence:
		v.Recommendation = recommendPartial
	default:
		v.Recommendation = recommendUnverified
	}

	return v, nil
}
