package stream

import (
	"context"
	"fmt"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Producer appends registration submissions to the stream
type Producer struct {
	client    StreamClient
	streamKey string
}

func NewProducer(client StreamClient, streamKey string) *Producer {
	return &Producer{
		client:    client,
		streamKey: streamKey,
	}
}

func (p *Producer) Enqueue(ctx context.Context, submission *models.Submission) error {
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamKey,
		Values: submissionFields(submission),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to add submission to stream: %w", err)
	}

	log.Debug().
		Str("message_id", id).
		Str("submission_id", submission.SubmissionID).
		Msg("Submission queued")

	return nil
}
