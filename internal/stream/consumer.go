package stream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	readCount       = 10
	readBlock       = time.Second
	pendingBatch    = 100
	claimMinIdle    = time.Minute
	pendingInterval = 30 * time.Second
	cleanupInterval = time.Hour
	errorPause      = time.Second
)

// StreamClient is the subset of the go-redis client used by the registration stream
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XPendingExt(ctx context.Context, a *redis.XPendingExtArgs) *redis.XPendingExtCmd
	XClaim(ctx context.Context, a *redis.XClaimArgs) *redis.XMessageSliceCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XTrimMinID(ctx context.Context, key string, minID string) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Processor registers one submission
type Processor interface {
	ProcessSubmission(ctx context.Context, submission *models.Submission) error
}

// Consumer reads registration submissions from a Redis stream consumer group
type Consumer struct {
	client            StreamClient
	streamKey         string
	consumerGroup     string
	consumerName      string
	processor         Processor
	retryHandler      *RetryHandler
	retentionDuration time.Duration
	lastPendingCheck  time.Time
}

func NewConsumer(
	client StreamClient,
	streamKey string,
	consumerGroup string,
	consumerName string,
	processor Processor,
	retryHandler *RetryHandler,
	retentionDuration time.Duration,
) *Consumer {
	return &Consumer{
		client:            client,
		streamKey:         streamKey,
		consumerGroup:     consumerGroup,
		consumerName:      consumerName,
		processor:         processor,
		retryHandler:      retryHandler,
		retentionDuration: retentionDuration,
	}
}

// Start blocks until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.createConsumerGroup(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create consumer group")
	}

	log.Info().Msg("Recovering pending submissions on startup")
	if err := c.recoverPending(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to recover pending submissions on startup")
	}
	c.lastPendingCheck = time.Now()

	go c.runCleanup(ctx)
	log.Info().
		Dur("cleanup_interval", cleanupInterval).
		Dur("retention", c.retentionDuration).
		Msg("Started stream cleanup")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Msg("Error consuming submissions")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(errorPause):
			}
		}
	}
}

func (c *Consumer) createConsumerGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.streamKey, c.consumerGroup, "$").Err()
	if err != nil {
		if strings.Contains(err.Error(), "BUSYGROUP") {
			log.Debug().Str("group", c.consumerGroup).Msg("Consumer group already exists")
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	log.Info().
		Str("group", c.consumerGroup).
		Str("stream", c.streamKey).
		Msg("Created consumer group")
	return nil
}

// recoverPending claims entries other consumers left idle in the pending list
func (c *Consumer) recoverPending(ctx context.Context) error {
	pending, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: c.streamKey,
		Group:  c.consumerGroup,
		Start:  "-",
		End:    "+",
		Count:  pendingBatch,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get pending messages: %w", err)
	}

	ids := make([]string, 0, len(pending))
	for _, p := range pending {
		if p.Idle >= claimMinIdle {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	claimed, err := c.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   c.streamKey,
		Group:    c.consumerGroup,
		Consumer: c.consumerName,
		MinIdle:  claimMinIdle,
		Messages: ids,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to claim messages: %w", err)
	}

	log.Info().
		Int("idle", len(ids)).
		Int("claimed", len(claimed)).
		Msg("Claimed pending submissions")

	for i := range claimed {
		if err := c.handle(ctx, &claimed[i]); err != nil {
			log.Error().Err(err).Str("message_id", claimed[i].ID).Msg("Failed to process claimed submission")
		}
	}

	return nil
}

func (c *Consumer) consume(ctx context.Context) error {
	if time.Since(c.lastPendingCheck) > pendingInterval {
		if err := c.recoverPending(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to recover pending submissions")
		}
		c.lastPendingCheck = time.Now()
	}

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.consumerGroup,
		Consumer: c.consumerName,
		Streams:  []string{c.streamKey, ">"},
		Count:    readCount,
		Block:    readBlock,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read from stream: %w", err)
	}

	for _, stream := range streams {
		if stream.Stream != c.streamKey {
			continue
		}
		for i := range stream.Messages {
			if err := c.handle(ctx, &stream.Messages[i]); err != nil {
				log.Error().Err(err).Str("message_id", stream.Messages[i].ID).Msg("Failed to process submission")
			}
		}
	}

	return nil
}

// handle registers one entry. The entry is acknowledged once it has been
// registered or dead-lettered, and stays pending otherwise.
func (c *Consumer) handle(ctx context.Context, msg *redis.XMessage) error {
	fields := make(map[string]string, len(msg.Values))
	values := make(map[string]interface{}, len(msg.Values))
	for key, val := range msg.Values {
		if s, ok := val.(string); ok {
			fields[key] = s
			values[key] = s
		}
	}

	submission, err := ParseSubmission(&StreamMessage{ID: msg.ID, Fields: fields})
	if err != nil {
		log.Error().Err(err).Str("message_id", msg.ID).Msg("Malformed submission")
		if dlqErr := c.retryHandler.deadLetter(ctx, msg.ID, values, err); dlqErr != nil {
			return dlqErr
		}
		return c.acknowledge(ctx, msg.ID)
	}

	err = c.retryHandler.RetryWithBackoff(ctx, func() error {
		return c.processor.ProcessSubmission(ctx, submission)
	}, msg.ID, values)
	if err != nil {
		return err
	}

	return c.acknowledge(ctx, msg.ID)
}

// cleanupOldMessages trims entries older than the retention window
func (c *Consumer) cleanupOldMessages(ctx context.Context) error {
	cutoff := time.Now().Add(-c.retentionDuration)
	minID := fmt.Sprintf("%d-0", cutoff.UnixMilli())

	trimmed, err := c.client.XTrimMinID(ctx, c.streamKey, minID).Result()
	if err != nil {
		return fmt.Errorf("failed to trim stream: %w", err)
	}

	if trimmed > 0 {
		log.Debug().
			Int64("trimmed", trimmed).
			Str("cutoff", cutoff.Format(time.RFC3339)).
			Msg("Trimmed old submissions from stream")
	}

	return nil
}

func (c *Consumer) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	if err := c.cleanupOldMessages(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to run initial stream cleanup")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stream cleanup shutting down")
			return
		case <-ticker.C:
			if err := c.cleanupOldMessages(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to clean up stream")
			}
		}
	}
}

func (c *Consumer) acknowledge(ctx context.Context, messageID string) error {
	if err := c.client.XAck(ctx, c.streamKey, c.consumerGroup, messageID).Err(); err != nil {
		log.Error().Err(err).Str("message_id", messageID).Msg("Failed to acknowledge message")
		return err
	}

	log.Debug().Str("message_id", messageID).Msg("Message acknowledged")
	return nil
}
