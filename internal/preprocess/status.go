package preprocess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	statusKeyPrefix = "content_submission_status:"
	statusTTL       = 12 * time.Hour
)

// StatusStore is the subset of the Redis client used for submission status
type StatusStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

func statusKey(submissionID string) string {
	return statusKeyPrefix + submissionID
}

// UpdateStatus overwrites the submission's status, refreshing its TTL
func UpdateStatus(ctx context.Context, store StatusStore, status models.SubmissionStatus) error {
	validSteps := map[models.Step]bool{
		models.StepQueued:     true,
		models.StepProcessing: true,
		models.StepRegistered: true,
		models.StepFailed:     true,
	}
	if !validSteps[status.Step] {
		return fmt.Errorf("%w: unknown step: %s", models.ErrInvalidInput, status.Step)
	}
	if status.UpdatedAt.IsZero() {
		status.UpdatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}

	rkey := statusKey(status.SubmissionID)
	if err := store.Set(ctx, rkey, payload, statusTTL).Err(); err != nil {
		log.Error().Err(err).
			Str("step", string(status.Step)).
			Str("submission_id", status.SubmissionID).
			Str("redis_key", rkey).
			Msg("Failed to update status in Redis")
		return fmt.Errorf("failed to update status in Redis: %w", err)
	}

	log.Trace().
		Str("step", string(status.Step)).
		Str("submission_id", status.SubmissionID).
		Msg("Status updated in Redis")

	return nil
}

func GetStatus(ctx context.Context, store StatusStore, submissionID string) (*models.SubmissionStatus, error) {
	raw, err := store.Get(ctx, statusKey(submissionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: submission %s", models.ErrNotFound, submissionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read status from Redis: %w", err)
	}

	var status models.SubmissionStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}

	return &status, nil
}
