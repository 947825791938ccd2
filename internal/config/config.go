// Package config provides environment-driven configuration for the service
// and its external collaborators. The .env file, if any, is loaded by main
// before anything here runs; this package only reads the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Matcher bounds one category-matching call site. The standalone gap-finder
// CLI and the HTTP service use different limits and thresholds on purpose;
// changing either pair is a product decision, not a cleanup.
type Matcher struct {
	Limit          int
	ScoreThreshold float64
}

// Config is the process configuration.
type Config struct {
	Port        int
	DatabaseURL string

	TaxonomyPath string

	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string
	EmbeddingDim     int

	QdrantURL    string
	QdrantAPIKey string
	Collection   string

	GeminiAPIKey string

	ServiceMatcher   Matcher
	GapFinderMatcher Matcher

	HTTPTimeout time.Duration
	LogJSON     bool
	Debug       bool
}

// FromEnv reads the configuration from the environment, applying defaults.
// Presence of the per-command required values (database URL, API keys) is
// checked by the commands that need them, not here.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        8080,
		DatabaseURL: os.Getenv("DATABASE_URL"),

		TaxonomyPath: os.Getenv("TAXONOMY_PATH"),

		EmbeddingBaseURL: os.Getenv("EMBEDDING_BASE_URL"),
		EmbeddingAPIKey:  os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:   os.Getenv("EMBEDDING_MODEL"),
		EmbeddingDim:     1536,

		QdrantURL:    getenvDefault("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey: os.Getenv("QDRANT_API_KEY"),
		Collection:   getenvDefault("QDRANT_COLLECTION", "skill_embeddings"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		ServiceMatcher:   Matcher{Limit: 5, ScoreThreshold: 0.45},
		GapFinderMatcher: Matcher{Limit: 10, ScoreThreshold: 0.40},

		HTTPTimeout: 30 * time.Second,
		LogJSON:     getenvBool("LOG_JSON"),
		Debug:       getenvBool("DEBUG"),
	}

	var err error
	if cfg.Port, err = getenvInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.EmbeddingDim, err = getenvInt("EMBEDDING_DIMENSION", cfg.EmbeddingDim); err != nil {
		return nil, err
	}
	if cfg.ServiceMatcher, err = matcherFromEnv("SERVICE", cfg.ServiceMatcher); err != nil {
		return nil, err
	}
	if cfg.GapFinderMatcher, err = matcherFromEnv("GAPFINDER", cfg.GapFinderMatcher); err != nil {
		return nil, err
	}
	return cfg, nil
}

func matcherFromEnv(prefix string, defaults Matcher) (Matcher, error) {
	m := defaults
	var err error
	if m.Limit, err = getenvInt(prefix+"_MATCH_LIMIT", m.Limit); err != nil {
		return m, err
	}
	if m.ScoreThreshold, err = getenvFloat(prefix+"_MATCH_THRESHOLD", m.ScoreThreshold); err != nil {
		return m, err
	}
	if m.Limit < 1 {
		return m, fmt.Errorf("%s_MATCH_LIMIT must be at least 1, got %d", prefix, m.Limit)
	}
	if m.ScoreThreshold < 0 || m.ScoreThreshold > 1 {
		return m, fmt.Errorf("%s_MATCH_THRESHOLD must be in [0, 1], got %g", prefix, m.ScoreThreshold)
	}
	return m, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

func getenvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return f, nil
}
