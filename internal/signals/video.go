package signals

import (
	"context"
	"strings"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/metrics"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/rs/zerolog/log"
)

// MaxVideoCandidates is the number of videos requested per title
const MaxVideoCandidates = 5

// VideoSearcher finds videos by title
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]models.VideoResult, error)
}

// VideoSignal scores a title by the mean TitleSimilarity of the videos a search returns
type VideoSignal struct {
	searcher VideoSearcher
	timeout  time.Duration
}

// NewVideoSignal returns a video signal backed by searcher. A nil searcher
// means no provider is configured and every check reports Unavailable.
func NewVideoSignal(searcher VideoSearcher, timeout time.Duration) *VideoSignal {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &VideoSignal{searcher: searcher, timeout: timeout}
}

func (s *VideoSignal) Check(ctx context.Context, title string) models.SignalResult {
	empty := models.SignalResult{Matches: []models.CandidateMatch{}}
	if strings.TrimSpace(title) == "" {
		return empty
	}

	if s.searcher == nil {
		log.Warn().Msg("Video search provider not configured, video signal unavailable")
		metrics.ExternalCallCount.WithLabelValues("video", "unconfigured").Inc()
		empty.Unavailable = true
		return empty
	}

	provider := providerName(s.searcher, "video")

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	videos, err := s.searcher.SearchVideos(callCtx, title, MaxVideoCandidates)
	if err != nil {
		metrics.ExternalCallCount.WithLabelValues(provider, "error").Inc()
		log.Warn().Err(err).Str("provider", provider).Msg("Video search failed, video signal unavailable")
		empty.Unavailable = true
		return empty
	}
	metrics.ExternalCallCount.WithLabelValues(provider, "ok").Inc()

	if len(videos) > MaxVideoCandidates {
		videos = videos[:MaxVideoCandidates]
	}

	total := 0.0
	matches := make([]models.CandidateMatch, 0, len(videos))
	for _, v := range videos {
		sim := TitleSimilarity(title, v.Title)
		total += sim
		matches = append(matches, models.CandidateMatch{
			Source:          models.SourceVideo,
			Title:           v.Title,
			Owner:           v.Channel,
			SimilarityScore: sim,
			URL:             v.URL,
		})
	}

	score := 0.0
	if len(videos) > 0 {
		score = total / float64(len(videos))
	}

	log.Debug().
		Int("candidates", len(videos)).
		Float64("score", score).
		Msg("Video signal computed")

	return models.SignalResult{
		Score:   score,
		Matches: matches,
		Checked: len(videos),
	}
}
