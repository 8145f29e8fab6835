package detection

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/insights"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/metrics"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/plagiarism"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/signals"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 60 * time.Second

	DefaultHistoryLimit   = 20
	DefaultAdminListLimit = 50
	MaxHistoryLimit       = 100
)

// CorpusProvider lists the registered works a registry detection compares against
type CorpusProvider interface {
	ListRecords(ctx context.Context) ([]models.ContentRecord, error)
}

// ContentCounter counts registered works
type ContentCounter interface {
	Count(ctx context.Context) (int64, error)
}

// ThresholdProvider returns the current threshold snapshot, or models.ErrNotFound
type ThresholdProvider interface {
	Thresholds(ctx context.Context) (models.ThresholdConfig, error)
}

type ThresholdStore interface {
	ThresholdProvider
	UpsertTier(ctx context.Context, tier models.Tier) error
}

type DetectionStore interface {
	Insert(ctx context.Context, record *models.DetectionRecord) error
	FindByID(ctx context.Context, id string) (*models.DetectionRecord, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.DetectionRecord, error)
	List(ctx context.Context, limit, offset int) ([]models.DetectionRecord, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	ListSince(ctx context.Context, since time.Time) ([]models.DetectionRecord, error)
}

// TextChecker is the web signal for text
type TextChecker interface {
	Check(ctx context.Context, text string) models.SignalResult
}

// VideoChecker is the video-title signal
type VideoChecker interface {
	Check(ctx context.Context, title string) models.SignalResult
}

type Options struct {
	Matcher    *plagiarism.Matcher
	Corpus     CorpusProvider
	Contents   ContentCounter
	Categories ContentCounter
	Thresholds ThresholdStore
	Detections DetectionStore
	Text       TextChecker
	Video      VideoChecker
	Timeout    time.Duration
}

// Service runs detections on every signal path and keeps their history
type Service struct {
	matcher    *plagiarism.Matcher
	corpus     CorpusProvider
	contents   ContentCounter
	categories ContentCounter
	thresholds ThresholdStore
	detections DetectionStore
	text       TextChecker
	video      VideoChecker
	timeout    time.Duration
	now        func() time.Time
}

func NewService(opts Options) *Service {
	if opts.Matcher == nil {
		opts.Matcher = plagiarism.NewMatcher(nil, 0)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{
		matcher:    opts.Matcher,
		corpus:     opts.Corpus,
		contents:   opts.Contents,
		categories: opts.Categories,
		thresholds: opts.Thresholds,
		detections: opts.Detections,
		text:       opts.Text,
		video:      opts.Video,
		timeout:    opts.Timeout,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Thresholds returns the snapshot used by the next detection. A missing or
// unreadable configuration falls back to the defaults.
func (s *Service) Thresholds(ctx context.Context) models.ThresholdConfig {
	if s.thresholds == nil {
		return models.DefaultThresholds()
	}

	cfg, err := s.thresholds.Thresholds(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Warn().Err(err).Msg("Failed to load thresholds, using defaults")
		}
		return models.DefaultThresholds()
	}
	return cfg
}

// UpdateTier applies a partial edit to one tier. Scoring weights are global,
// so a weight edit is copied onto every tier. The resulting configuration
// is validated as a whole before anything is written.
func (s *Service) UpdateTier(ctx context.Context, name string, update models.TierUpdate) (models.ThresholdConfig, error) {
	tierName, err := models.ParseTierName(name)
	if err != nil {
		return models.ThresholdConfig{}, err
	}
	if s.thresholds == nil {
		return models.ThresholdConfig{}, errors.New("threshold store not configured")
	}

	now := s.now()
	current := s.Thresholds(ctx)
	tier, _ := current.Tier(tierName)
	tier = update.Apply(tier)
	tier.Name = tierName
	tier.UpdatedAt = now

	next := current.WithTier(tier)
	changed := []models.Tier{tier}
	if update.ChangesWeights() {
		for _, other := range next.Tiers() {
			if other.Name == tierName {
				continue
			}
			other.Weights = tier.Weights
			other.UpdatedAt = now
			next = next.WithTier(other)
			changed = append(changed, other)
		}
	}

	if err := next.Validate(); err != nil {
		return models.ThresholdConfig{}, err
	}

	for _, t := range changed {
		if err := s.thresholds.UpsertTier(ctx, t); err != nil {
			return models.ThresholdConfig{}, err
		}
	}

	log.Info().
		Str("tier", string(tierName)).
		Float64("min_score", tier.MinScore).
		Float64("max_score", tier.MaxScore).
		Msg("Threshold tier updated")

	return next, nil
}

// DetectText scores content against the registry corpus or the web
func (s *Service) DetectText(ctx context.Context, req *models.DetectRequest, userID string) (*models.DetectResponse, error) {
	source, err := models.ParseMatchSource(strings.ToLower(strings.TrimSpace(req.Source)))
	if err != nil || source == models.SourceVideo {
		return nil, fmt.Errorf("%w: unsupported source %q", models.ErrInvalidInput, req.Source)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is empty", models.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	cfg := s.Thresholds(ctx)

	var result models.DetectionResult
	switch source {
	case models.SourceWeb:
		result = signals.BuildResult(s.checkText(ctx, req.Content), cfg, models.SourceWeb)
	default:
		result, err = s.detectRegistry(ctx, req.Content, cfg)
		if err != nil {
			return nil, err
		}
	}

	return s.finish(ctx, userID, req.Title, result, started), nil
}

func (s *Service) detectRegistry(ctx context.Context, content string, cfg models.ThresholdConfig) (models.DetectionResult, error) {
	if s.corpus == nil {
		return models.DetectionResult{}, fmt.Errorf("%w: no corpus provider", models.ErrCorpusUnavailable)
	}

	corpus, err := s.corpus.ListRecords(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrCorpusUnavailable) {
			err = fmt.Errorf("%w: %v", models.ErrCorpusUnavailable, err)
		}
		log.Error().Err(err).Msg("Corpus unavailable")
		return models.DetectionResult{}, err
	}

	matches, err := s.matcher.FindMatches(ctx, content, corpus, cfg.ScoringWeights())
	if err != nil {
		return models.DetectionResult{}, err
	}

	log.Debug().
		Int("corpus_size", len(corpus)).
		Int("matches", len(matches)).
		Msg("Registry detection scored")

	return plagiarism.BuildResult(matches, cfg, models.SourceRegistry), nil
}

func (s *Service) checkText(ctx context.Context, content string) models.SignalResult {
	if s.text == nil {
		return models.SignalResult{Matches: []models.CandidateMatch{}, Unavailable: true}
	}
	return s.text.Check(ctx, content)
}

// DetectVideo scores a video by its title. Without a title the uploaded
// filename, minus its extension, is searched instead.
func (s *Service) DetectVideo(ctx context.Context, req *models.DetectVideoRequest, userID string) (*models.DetectResponse, error) {
	if strings.HasPrefix(strings.ToLower(req.ContentType), "image/") {
		return nil, fmt.Errorf("%w: image copyright detection is not supported", models.ErrUnsupportedMediaType)
	}

	title := VideoTitle(req.Title, req.Filename)
	if title == "" {
		return nil, fmt.Errorf("%w: a title or filename is required", models.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	cfg := s.Thresholds(ctx)

	sig := models.SignalResult{Matches: []models.CandidateMatch{}, Unavailable: true}
	if s.video != nil {
		sig = s.video.Check(ctx, title)
	}

	return s.finish(ctx, userID, title, signals.BuildResult(sig, cfg, models.SourceVideo), started), nil
}

// VideoTitle picks the search title for a video upload
func VideoTitle(title, filename string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

// finish records the detection and attaches its narrative. History writes
// are best effort.
func (s *Service) finish(ctx context.Context, userID, title string, result models.DetectionResult, started time.Time) *models.DetectResponse {
	record := &models.DetectionRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           strings.TrimSpace(title),
		CreatedAt:       s.now(),
		DetectionResult: result,
	}

	if s.detections != nil {
		if err := s.detections.Insert(ctx, record); err != nil {
			log.Warn().Err(err).Str("detection_id", record.ID).Msg("Failed to persist detection")
		}
	}

	metrics.DetectionCount.WithLabelValues(string(result.Source), string(result.MatchLevel)).Inc()
	metrics.DetectionDuration.WithLabelValues(string(result.Source)).Observe(time.Since(started).Seconds())

	log.Info().
		Str("detection_id", record.ID).
		Str("source", string(result.Source)).
		Float64("score", result.SimilarityScore).
		Str("match_level", string(result.MatchLevel)).
		Int("matches", result.TotalMatches).
		Bool("external_unavailable", result.ExternalUnavailable).
		Msg("Detection completed")

	return respond(record)
}

func respond(record *models.DetectionRecord) *models.DetectResponse {
	return &models.DetectResponse{
		DetectionID:     record.ID,
		DetectionResult: record.DetectionResult,
		Insights:        insights.Generate(record.DetectionResult),
		Risk:            insights.AssessRisk(record.SimilarityScore, record.MatchLevel),
		CreatedAt:       record.CreatedAt,
	}
}

// GetDetection returns a stored detection with its insights regenerated.
// Other users' detections are reported as not found unless admin is set.
func (s *Service) GetDetection(ctx context.Context, id, userID string, admin bool) (*models.DetectResponse, error) {
	if s.detections == nil {
		return nil, fmt.Errorf("%w: detection %s", models.ErrNotFound, id)
	}

	record, err := s.detections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && record.UserID != userID {
		return nil, fmt.Errorf("%w: detection %s", models.ErrNotFound, id)
	}
	if record.MatchedSources == nil {
		record.MatchedSources = []models.CandidateMatch{}
	}

	return respond(record), nil
}

// History pages through a user's detections, newest first
func (s *Service) History(ctx context.Context, userID string, limit, offset int) (*models.DetectionHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.page(limit, offset,
		func(limit, offset int) ([]models.DetectionRecord, error) {
			return s.detections.ListByUser(ctx, userID, limit, offset)
		},
		func() (int64, error) { return s.detections.CountByUser(ctx, userID) },
		false,
	)
}

// ListAll pages through every user's detections, newest first
func (s *Service) ListAll(ctx context.Context, limit, offset int) (*models.DetectionHistory, error) {
	if limit <= 0 {
		limit = DefaultAdminListLimit
	}
	return s.page(limit, offset,
		func(limit, offset int) ([]models.DetectionRecord, error) {
			return s.detections.List(ctx, limit, offset)
		},
		func() (int64, error) { return s.detections.Count(ctx) },
		true,
	)
}

func (s *Service) page(
	limit, offset int,
	list func(limit, offset int) ([]models.DetectionRecord, error),
	count func() (int64, error),
	withUser bool,
) (*models.DetectionHistory, error) {
	limit = min(limit, MaxHistoryLimit)
	offset = max(offset, 0)

	history := &models.DetectionHistory{
		Detections: []models.DetectionSummary{},
		Pagination: models.Pagination{Limit: limit, Offset: offset},
	}
	if s.detections == nil {
		return history, nil
	}

	records, err := list(limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := count()
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		summary := models.DetectionSummary{
			ID:              r.ID,
			Source:          r.Source,
			SimilarityScore: r.SimilarityScore,
			MatchLevel:      r.MatchLevel,
			MatchedCount:    len(r.MatchedSources),
			CreatedAt:       r.CreatedAt,
		}
		if withUser {
			summary.UserID = r.UserID
		}
		history.Detections = append(history.Detections, summary)
	}

	history.Pagination.Total = total
	history.Pagination.HasMore = int64(offset+len(records)) < total

	return history, nil
}

const analyticsDays = 7

// Analytics summarises detections over the trailing seven days
func (s *Service) Analytics(ctx context.Context) (*models.AnalyticsOverview, error) {
	now := s.now()

	overview := &models.AnalyticsOverview{
		MatchLevelDistribution: map[models.MatchLevel]int{
			models.MatchOriginal: 0,
			models.MatchPartial:  0,
			models.MatchHigh:     0,
		},
		DailyDetections: make([]models.DailyCount, 0, analyticsDays),
	}

	if s.contents != nil {
		total, err := s.contents.Count(ctx)
		if err != nil {
			return nil, err
		}
		overview.TotalContent = total
	}

	if s.categories != nil {
		total, err := s.categories.Count(ctx)
		if err != nil {
			return nil, err
		}
		overview.TotalCategories = total
	}

	if s.detections == nil {
		fillDays(overview, now, nil)
		return overview, nil
	}

	total, err := s.detections.Count(ctx)
	if err != nil {
		return nil, err
	}
	overview.TotalDetections = total

	recent, err := s.detections.ListSince(ctx, now.AddDate(0, 0, -analyticsDays))
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for _, d := range recent {
		if _, ok := overview.MatchLevelDistribution[d.MatchLevel]; ok {
			overview.MatchLevelDistribution[d.MatchLevel]++
		}
		sum += d.SimilarityScore
	}
	overview.DetectionsLast7Days = len(recent)
	if len(recent) > 0 {
		overview.AverageSimilarityScore = plagiarism.Round2(sum / float64(len(recent)))
	}

	fillDays(overview, now, recent)
	return overview, nil
}

// fillDays buckets detections by UTC date for the last analyticsDays days, oldest first
func fillDays(overview *models.AnalyticsOverview, now time.Time, recent []models.DetectionRecord) {
	counts := make(map[string]int, analyticsDays)
	for _, d := range recent {
		counts[d.CreatedAt.UTC().Format(time.DateOnly)]++
	}

	for i := analyticsDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(time.DateOnly)
		overview.DailyDetections = append(overview.DailyDetections, models.DailyCount{Date: date, Count: counts[date]})
	}
}
