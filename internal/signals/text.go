package signals

import (
	"context"
	"net/url"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/metrics"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultCallTimeout bounds a single external search call
const DefaultCallTimeout = 5 * time.Second

const webSourceOwner = "Web Source"

// WebSearcher runs an exact-match web search
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]models.WebResult, error)
}

// TextSignal scores text by how many of its sentences appear verbatim on the web
type TextSignal struct {
	searcher WebSearcher
	timeout  time.Duration
}

// NewTextSignal returns a text signal backed by searcher. A nil searcher
// means no provider is configured and every check reports Unavailable.
func NewTextSignal(searcher WebSearcher, timeout time.Duration) *TextSignal {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &TextSignal{searcher: searcher, timeout: timeout}
}

type chunkOutcome struct {
	results []models.WebResult
	err     error
}

// Check queries each chunk as a quoted phrase. A chunk hits when the search
// returns at least one result; failed or timed-out queries count as misses.
// Score is hits / chunks checked; matches are deduplicated by URL.
func (s *TextSignal) Check(ctx context.Context, text string) models.SignalResult {
	chunks := SplitChunks(text)
	if len(chunks) == 0 {
		return models.SignalResult{Matches: []models.CandidateMatch{}}
	}

	if s.searcher == nil {
		log.Warn().Msg("Web search provider not configured, text signal unavailable")
		metrics.ExternalCallCount.WithLabelValues("web", "unconfigured").Inc()
		return models.SignalResult{Matches: []models.CandidateMatch{}, Unavailable: true}
	}

	provider := providerName(s.searcher, "web")
	outcomes := make([]chunkOutcome, len(chunks))

	var g errgroup.Group
	g.SetLimit(MaxChunks)
	for i, chunk := range chunks {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			results, err := s.searcher.Search(callCtx, `"`+chunk+`"`)
			outcomes[i] = chunkOutcome{results: results, err: err}
			return nil
		})
	}
	_ = g.Wait()

	hits, failures := 0, 0
	seen := make(map[string]struct{})
	matches := make([]models.CandidateMatch, 0)

	for i, out := range outcomes {
		if out.err != nil {
			failures++
			metrics.ExternalCallCount.WithLabelValues(provider, "error").Inc()
			log.Warn().Err(out.err).Int("chunk", i).Str("provider", provider).Msg("Web search failed, counting chunk as a miss")
			continue
		}
		metrics.ExternalCallCount.WithLabelValues(provider, "ok").Inc()

		if len(out.results) == 0 {
			continue
		}
		hits++

		for _, r := range out.results {
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			matches = append(matches, models.CandidateMatch{
				Source:          models.SourceWeb,
				Title:           r.Title,
				Owner:           hostOf(r.URL),
				SimilarityScore: 1.0,
				URL:             r.URL,
				Snippet:         r.Snippet,
			})
		}
	}

	result := models.SignalResult{
		Score:       float64(hits) / float64(len(chunks)),
		Matches:     matches,
		Checked:     len(chunks),
		Unavailable: failures == len(chunks),
	}

	log.Debug().
		Int("chunks", len(chunks)).
		Int("hits", hits).
		Int("failures", failures).
		Int("sources", len(matches)).
		Msg("Text signal computed")

	return result
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return webSourceOwner
	}
	return u.Host
}

// providerName labels metrics with the searcher's Name when it has one
func providerName(searcher interface{}, fallback string) string {
	if n, ok := searcher.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fallback
}
