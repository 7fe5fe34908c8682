// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Knowledge modes. Static scores against the embedded concept catalog;
// documentary scores against a freshly fetched reference document.
const (
	ModeStatic      = "static"
	ModeDocumentary = "documentary"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"concept-evaluator"`
	// KnowledgeMode selects the knowledge provider: static or documentary.
	KnowledgeMode string `env:"KNOWLEDGE_MODE" envDefault:"static"`
	// WikipediaAPIURL is the MediaWiki action API endpoint used by the
	// documentary reference fetcher.
	WikipediaAPIURL string        `env:"WIKIPEDIA_API_URL" envDefault:"https://en.wikipedia.org/w/api.php"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	EmbeddingsModel string        `env:"EMBEDDINGS_MODEL" envDefault:"text-embedding-3-small"`
	EmbedTimeout    time.Duration `env:"EMBED_TIMEOUT" envDefault:"30s"`
	// MetricsAddr, when set, exposes Prometheus metrics on that address.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:""`
	// Backoff configuration for external calls (reference fetch, embeddings).
	BackoffMaxElapsedTime  time.Duration `env:"BACKOFF_MAX_ELAPSED_TIME" envDefault:"60s"`
	BackoffInitialInterval time.Duration `env:"BACKOFF_INITIAL_INTERVAL" envDefault:"1s"`
	BackoffMaxInterval     time.Duration `env:"BACKOFF_MAX_INTERVAL" envDefault:"10s"`
	BackoffMultiplier      float64       `env:"BACKOFF_MULTIPLIER" envDefault:"1.5"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown knowledge modes early.
func (c Config) Validate() error {
	switch c.KnowledgeMode {
	case ModeStatic, ModeDocumentary:
		return nil
	default:
		return fmt.Errorf("op=config.Validate: unknown knowledge mode %q", c.KnowledgeMode)
	}
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// EmbeddingsEnabled reports whether the remote similarity service is
// configured; without it the lexical fallback serves alone.
func (c Config) EmbeddingsEnabled() bool {
	return c.OpenAIAPIKey != "" && c.EmbeddingsModel != ""
}

// GetBackoffConfig returns backoff configuration appropriate for the
// current environment. Test environments use much shorter timeouts.
func (c Config) GetBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 5 * time.Second, 100 * time.Millisecond, 1 * time.Second, 2.0
	}
	return c.BackoffMaxElapsedTime, c.BackoffInitialInterval, c.BackoffMaxInterval, c.BackoffMultiplier
}
