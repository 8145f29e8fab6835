package config

import (
	"fmt"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/configs/env"
)

const (
	WebProviderGoogle  = "google"
	WebProviderSerpAPI = "serpapi"
)

// Config holds all configuration for the application
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDBName string

	// Redis
	RedisHost               string
	RedisPassword           string
	RedisStreamKey          string
	RedisConsumerGroup      string
	RedisDeadLetterKey      string
	StreamRetentionDuration time.Duration
	StreamConsumerEnabled   bool

	// JWT
	JWTSecret string
	JWTIssuer string

	// Rate Limiting
	RateLimitRPS float64

	// Concurrency
	MaxConcurrentCompute int

	// Detection
	DetectionTimeout time.Duration
	BatchSize        int

	// External search collaborators
	WebSearchProvider    string
	GoogleSearchAPIKey   string
	GoogleSearchEngineID string
	SerpAPIKey           string
	YouTubeAPIKey        string
	ExternalCallTimeout  time.Duration
	ExternalCacheTTL     time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Server
	ServerPort  string
	MetricsPort string
}

func Load() (*Config, error) {
	cfg := &Config{}

	// MongoDB
	cfg.MongoURI = env.GetEnv("MONGO_URI", "")
	cfg.MongoDBName = env.GetEnv("MONGO_DB_NAME", "")

	// Redis
	cfg.RedisHost = env.GetEnv("REDIS_HOST", "localhost:6379")
	cfg.RedisPassword = env.GetEnv("REDIS_PASSWORD", "")
	cfg.RedisStreamKey = env.GetEnv("REDIS_STREAM_KEY", "registration:stream")
	cfg.RedisConsumerGroup = env.GetEnv("REDIS_CONSUMER_GROUP", "registration:group")
	cfg.RedisDeadLetterKey = env.GetEnv("REDIS_DEAD_LETTER_KEY", "registration:dlq")
	retentionHours := env.GetEnvInt("STREAM_RETENTION_DURATION", 24)
	cfg.StreamRetentionDuration = time.Duration(retentionHours) * time.Hour
	cfg.StreamConsumerEnabled = env.GetEnvBool("STREAM_CONSUMER_ENABLED", true)

	// JWT
	cfg.JWTSecret = env.GetEnv("JWT_SECRET", "")
	cfg.JWTIssuer = env.GetEnv("JWT_ISSUER", "copyright-detection")

	// Rate Limiting
	cfg.RateLimitRPS = env.GetEnvFloat("RATE_LIMIT_RPS", 10.0)

	// Concurrency
	cfg.MaxConcurrentCompute = env.GetEnvInt("MAX_CONCURRENT_COMPUTE", 5)

	// Detection
	timeoutSeconds := env.GetEnvInt("DETECTION_TIMEOUT_SECONDS", 60)
	cfg.DetectionTimeout = time.Duration(timeoutSeconds) * time.Second
	cfg.BatchSize = env.GetEnvInt("BATCH_SIZE", 100)

	// External search collaborators
	cfg.WebSearchProvider = env.GetEnv("WEB_SEARCH_PROVIDER", WebProviderGoogle)
	cfg.GoogleSearchAPIKey = env.GetEnv("GOOGLE_SEARCH_API_KEY", "")
	cfg.GoogleSearchEngineID = env.GetEnv("GOOGLE_SEARCH_ENGINE_ID", "")
	cfg.SerpAPIKey = env.GetEnv("SERPAPI_KEY", "")
	cfg.YouTubeAPIKey = env.GetEnv("YOUTUBE_API_KEY", "")
	callTimeout := env.GetEnvInt("EXTERNAL_CALL_TIMEOUT_SECONDS", 5)
	cfg.ExternalCallTimeout = time.Duration(callTimeout) * time.Second
	cacheTTL := env.GetEnvInt("EXTERNAL_CACHE_TTL_MINUTES", 360)
	cfg.ExternalCacheTTL = time.Duration(cacheTTL) * time.Minute

	// Logging
	cfg.LogLevel = env.GetEnv("LOG_LEVEL", "info")
	cfg.LogFormat = env.GetEnv("LOG_FORMAT", "json")

	// Server
	cfg.ServerPort = env.GetEnv("SERVER_PORT", "8080")
	cfg.MetricsPort = env.GetEnv("METRICS_PORT", "2112")

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.MongoDBName == "" {
		return fmt.Errorf("MONGO_DB_NAME is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.MaxConcurrentCompute <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_COMPUTE must be greater than 0")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be greater than 0")
	}
	if c.StreamRetentionDuration <= 0 {
		return fmt.Errorf("STREAM_RETENTION_DURATION must be greater than 0")
	}
	if c.DetectionTimeout <= 0 {
		return fmt.Errorf("DETECTION_TIMEOUT_SECONDS must be greater than 0")
	}
	if c.ExternalCallTimeout <= 0 {
		return fmt.Errorf("EXTERNAL_CALL_TIMEOUT_SECONDS must be greater than 0")
	}
	switch c.WebSearchProvider {
	case WebProviderGoogle, WebProviderSerpAPI:
	default:
		return fmt.Errorf("WEB_SEARCH_PROVIDER must be %q or %q", WebProviderGoogle, WebProviderSerpAPI)
	}
	return nil
}

// WebSearchConfigured reports whether the selected web provider has credentials.
func (c *Config) WebSearchConfigured() bool {
	if c.WebSearchProvider == WebProviderSerpAPI {
		return c.SerpAPIKey != ""
	}
	return c.GoogleSearchAPIKey != "" && c.GoogleSearchEngineID != ""
}
