package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/api"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/config"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/configs/env"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/detection"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/infra/mongo"
	redisInfra "github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/infra/redis"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/logger"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/metrics"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/plagiarism"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/preprocess"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/repository"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/signals"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/stream"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := env.LoadEnv(); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file, continuing with system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	logger.InitWithFormat(cfg.LogLevel, cfg.LogFormat)
	log.Info().Msg("Starting copyright detection server")

	metrics.InitPrometheus()

	// Metrics are served on their own port
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.MetricsHandler())
	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.MetricsPort).Msg("Metrics server started")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Metrics server failed to start")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, err := mongo.NewClient(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create MongoDB client")
	}
	defer mongoClient.Close(context.Background())

	redisClient, err := redisInfra.NewClient(ctx, cfg.RedisHost, cfg.RedisPassword, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis client")
	}
	defer redisClient.Close()

	mongoRepo := repository.NewMongoRepository(mongoClient)
	contentRepo := repository.NewContentRepository(mongoRepo)
	thresholdRepo := repository.NewThresholdRepository(mongoRepo)
	detectionRepo := repository.NewDetectionRepository(mongoRepo)
	categoryRepo := repository.NewCategoryRepository(mongoRepo)

	if err := contentRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create content indexes")
	}
	if err := detectionRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create detection indexes")
	}
	if err := categoryRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create category indexes")
	}

	workerPool := plagiarism.NewWorkerPool(ctx)
	defer workerPool.Close()

	detectionSvc := detection.NewService(detection.Options{
		Matcher:    plagiarism.NewMatcher(workerPool, cfg.BatchSize),
		Corpus:     contentRepo,
		Contents:   contentRepo,
		Categories: categoryRepo,
		Thresholds: thresholdRepo,
		Detections: detectionRepo,
		Text:       signals.NewTextSignal(webSearcher(cfg, redisClient), cfg.ExternalCallTimeout),
		Video:      signals.NewVideoSignal(videoSearcher(cfg, redisClient), cfg.ExternalCallTimeout),
		Timeout:    cfg.DetectionTimeout,
	})

	producer := stream.NewProducer(redisClient.Client, cfg.RedisStreamKey)
	preprocessSvc := preprocess.NewService(contentRepo, redisClient.Client, producer)

	retryHandler := stream.NewRetryHandler(redisClient.Client, cfg.RedisDeadLetterKey)

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}
	consumerName := fmt.Sprintf("consumer-%s-%d-%s", hostname, os.Getpid(), uuid.New().String()[:8])
	consumer := stream.NewConsumer(
		redisClient.Client,
		cfg.RedisStreamKey,
		cfg.RedisConsumerGroup,
		consumerName,
		preprocessSvc,
		retryHandler,
		cfg.StreamRetentionDuration,
	)
	log.Info().Str("consumer_name", consumerName).Msg("Redis stream consumer initialized")

	consumerDone := make(chan struct{})
	if cfg.StreamConsumerEnabled {
		go func() {
			defer close(consumerDone)
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("Redis consumer error")
			}
		}()
	} else {
		close(consumerDone)
		log.Info().Msg("Redis stream consumer disabled, submissions are only enqueued")
	}

	categorySvc := preprocess.NewCategoryService(categoryRepo)

	handler := api.NewHandler(detectionSvc, preprocessSvc, categorySvc, cfg.MaxConcurrentCompute)
	router := api.SetupRoutes(cfg, handler)
	srv := api.StartServer(router, cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down gracefully...")

	if err := api.ShutdownServer(srv, 30*time.Second); err != nil {
		log.Error().Err(err).Msg("Error shutting down Gin server")
	}

	cancel()
	select {
	case <-consumerDone:
	case <-time.After(10 * time.Second):
		log.Warn().Msg("Redis consumer did not stop in time")
	}

	metricsCtx, metricsCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer metricsCancel()
	if err := metricsServer.Shutdown(metricsCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down metrics server")
	}

	log.Info().Msg("Shutdown complete")
}

// webSearcher returns the configured web provider behind the Redis cache,
// or nil when the provider has no credentials
func webSearcher(cfg *config.Config, redisClient *redisInfra.Client) signals.WebSearcher {
	if !cfg.WebSearchConfigured() {
		log.Warn().Str("provider", cfg.WebSearchProvider).Msg("Web search not configured, web detections will report unavailable")
		return nil
	}

	var searcher signals.WebSearcher
	switch cfg.WebSearchProvider {
	case config.WebProviderSerpAPI:
		searcher = signals.NewSerpAPIClient("", cfg.SerpAPIKey, cfg.ExternalCallTimeout)
	default:
		searcher = signals.NewGoogleSearchClient("", cfg.GoogleSearchAPIKey, cfg.GoogleSearchEngineID, cfg.ExternalCallTimeout)
	}
	log.Info().Str("provider", cfg.WebSearchProvider).Msg("Web search enabled")

	return signals.NewCachedWebSearcher(searcher, redisClient.Client, cfg.ExternalCacheTTL)
}

func videoSearcher(cfg *config.Config, redisClient *redisInfra.Client) signals.VideoSearcher {
	if cfg.YouTubeAPIKey == "" {
		log.Warn().Msg("YouTube search not configured, video detections will report unavailable")
		return nil
	}
	return signals.NewCachedVideoSearcher(
		signals.NewYouTubeClient("", cfg.YouTubeAPIKey, cfg.ExternalCallTimeout),
		redisClient.Client,
		cfg.ExternalCacheTTL,
	)
}
