package plagiarism

import (
	"context"
	"fmt"
	"sort"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// NoiseFloor is the score a record must exceed to count as a candidate
	NoiseFloor = 0.10

	// MaxReportedMatches caps the matches returned in a DetectionResult
	MaxReportedMatches = 10

	defaultBatchSize = 100
)

// scored is the result of one ScoringJob, keyed by corpus position
type scored struct {
	index int
	score Score
}

// ScoringJob compares the input against one corpus record on the worker pool
type ScoringJob struct {
	Index      int
	Input      *models.Fingerprint
	InputText  string
	Record     *models.ContentRecord
	Weights    models.Weights
	ResultChan chan<- scored
}

func (j *ScoringJob) Execute(ctx context.Context) error {
	result := scored{
		index: j.Index,
		score: Calculate(*j.Input, j.InputText, *j.Record, j.Weights),
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case j.ResultChan <- result:
		return nil
	}
}

// Matcher scores submitted content against a corpus
type Matcher struct {
	pool      *WorkerPool
	batchSize int
}

// NewMatcher returns a matcher that scores in batches on pool.
// A nil pool scores sequentially on the calling goroutine.
func NewMatcher(pool *WorkerPool, batchSize int) *Matcher {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Matcher{pool: pool, batchSize: batchSize}
}

// FindMatches fingerprints the input once, scores every record, keeps those
// above NoiseFloor and sorts them by descending score. Equal scores keep
// corpus order.
func (m *Matcher) FindMatches(
	ctx context.Context,
	input string,
	corpus []models.ContentRecord,
	weights models.Weights,
) ([]models.CandidateMatch, error) {
	fp, err := Fingerprint(input)
	if err != nil {
		return nil, err
	}

	scores := make([]Score, len(corpus))
	if m.pool == nil {
		for i := range corpus {
			scores[i] = Calculate(fp, input, corpus[i], weights)
		}
	} else {
		for start := 0; start < len(corpus); start += m.batchSize {
			end := min(start+m.batchSize, len(corpus))
			if err := m.scoreBatch(ctx, &fp, input, corpus, start, end, weights, scores); err != nil {
				return nil, err
			}
		}
	}

	matches := make([]models.CandidateMatch, 0)
	for i, s := range scores {
		if s.Overall <= NoiseFloor {
			continue
		}
		record := corpus[i]
		breakdown := s.Breakdown
		matches = append(matches, models.CandidateMatch{
			Source:          models.SourceRegistry,
			SourceID:        record.ID,
			Title:           record.Title,
			Owner:           record.Owner,
			Category:        record.Category,
			SimilarityScore: s.Overall,
			Breakdown:       &breakdown,
			CertificateID:   record.CertificateID,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	log.Debug().
		Int("corpus", len(corpus)).
		Int("matches", len(matches)).
		Msg("Corpus scoring completed")

	return matches, nil
}

// scoreBatch submits corpus[start:end] to the pool and waits for every result
func (m *Matcher) scoreBatch(
	ctx context.Context,
	fp *models.Fingerprint,
	input string,
	corpus []models.ContentRecord,
	start, end int,
	weights models.Weights,
	scores []Score,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resultChan := make(chan scored, end-start)

	for i := start; i < end; i++ {
		job := &ScoringJob{
			Index:      i,
			Input:      fp,
			InputText:  input,
			Record:     &corpus[i],
			Weights:    weights,
			ResultChan: resultChan,
		}
		if err := m.pool.Submit(ctx, job); err != nil {
			return fmt.Errorf("failed to submit scoring job: %w", err)
		}
	}

	for received := start; received < end; received++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-resultChan:
			scores[r.index] = r.score
		}
	}

	return nil
}

// BuildResult classifies ranked matches into a DetectionResult. The score is
// the top match's score and the list is capped at MaxReportedMatches.
func BuildResult(matches []models.CandidateMatch, cfg models.ThresholdConfig, source models.MatchSource) models.DetectionResult {
	score := 0.0
	if len(matches) > 0 {
		score = matches[0].SimilarityScore
	}

	reported := matches
	if len(reported) > MaxReportedMatches {
		reported = reported[:MaxReportedMatches]
	}
	if reported == nil {
		reported = []models.CandidateMatch{}
	}

	return models.DetectionResult{
		SimilarityScore: score,
		MatchLevel:      Classify(score, &cfg),
		MatchedSources:  reported,
		TotalMatches:    len(matches),
		Source:          source,
	}
}
