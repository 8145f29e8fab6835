package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// RetryHandler retries a message's processing with exponential backoff and
// moves it to the dead letter stream once attempts run out
type RetryHandler struct {
	client      StreamClient
	dlqKey      string
	maxAttempts int
	baseDelay   time.Duration
}

func NewRetryHandler(client StreamClient, dlqKey string) *RetryHandler {
	return &RetryHandler{
		client:      client,
		dlqKey:      dlqKey,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}
}

// RetryWithBackoff runs fn until it succeeds. Invalid input is not retried.
// The returned error is nil on success or when the message was dead-lettered;
// it is non-nil only when the message should stay pending.
func (h *RetryHandler) RetryWithBackoff(ctx context.Context, fn func() error, messageID string, fields map[string]interface{}) error {
	var lastErr error
	delay := h.baseDelay

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, models.ErrInvalidInput) {
			break
		}

		log.Warn().
			Err(lastErr).
			Str("message_id", messageID).
			Int("attempt", attempt).
			Int("max_attempts", h.maxAttempts).
			Msg("Message processing failed")

		if attempt == h.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	if err := h.deadLetter(ctx, messageID, fields, lastErr); err != nil {
		return fmt.Errorf("processing failed (%v) and dead-lettering failed: %w", lastErr, err)
	}
	return nil
}

func (h *RetryHandler) deadLetter(ctx context.Context, messageID string, fields map[string]interface{}, cause error) error {
	values := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		values[k] = v
	}
	values["original_message_id"] = messageID
	values["error"] = cause.Error()
	values["failed_at"] = time.Now().UTC().Format(time.RFC3339)

	err := h.client.XAdd(ctx, &redis.XAddArgs{
		Stream: h.dlqKey,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add message to dead letter stream: %w", err)
	}

	log.Error().
		Err(cause).
		Str("message_id", messageID).
		Str("dlq", h.dlqKey).
		Msg("Message moved to dead letter stream")

	return nil
}
