package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"DocumentExtractionSystem/pkg/providers"
)

// DefaultMaxUploadBytes is the largest accepted upload (10 MB)
const DefaultMaxUploadBytes = 10 * 1024 * 1024

// Config holds the application configuration
type Config struct {
	Port string

	Provider providers.Name

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey string
	GeminiModel  string

	Temperature       float32
	RequestsPerSecond float64
	Timeout           time.Duration

	MaxUploadBytes int64
}

// LoadConfig loads the application configuration from the environment, reading a .env file first if one exists.
// A missing credential for the selected provider is an error.
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the .env file doesn't exist
		slog.Info("No .env file found. Using system environment variables.")
	} else {
		slog.Info("Loaded environment variables from .env file.")
	}

	return FromEnv()
}

// FromEnv builds a Config from the current process environment only
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		Provider: providers.Name(strings.ToLower(getEnv("LLM_PROVIDER", string(providers.OpenAI)))),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1/"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	var err error

	if cfg.Temperature, err = getEnvAsFloat32("LLM_TEMPERATURE", 0.1); err != nil {
		return nil, err
	}
	if cfg.RequestsPerSecond, err = getEnvAsFloat64("LLM_REQUESTS_PER_SECOND", 0); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = getEnvAsDuration("LLM_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = getEnvAsInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case providers.OpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set: %w", providers.ErrMissingAPIKey)
		}
	case providers.Gemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set: %w", providers.ErrMissingAPIKey)
		}
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", providers.OpenAI, providers.Gemini, cfg.Provider)
	}

	return cfg, nil
}

// ProviderOptions returns the options for the configured provider
func (c *Config) ProviderOptions() []providers.Option {
	options := []providers.Option{
		providers.WithTemperature(c.Temperature),
	}

	switch c.Provider {
	case providers.Gemini:
		options = append(options,
			providers.WithAPIKey(c.GeminiAPIKey),
			providers.WithModel(c.GeminiModel),
		)
	default:
		options = append(options,
			providers.WithAPIKey(c.OpenAIAPIKey),
			providers.WithBaseURL(c.OpenAIBaseURL),
			providers.WithModel(c.OpenAIModel),
		)
	}

	return options
}

// InitCompleter creates the configured inference client, paced by RequestsPerSecond when set
func InitCompleter(ctx context.Context, cfg *Config) (providers.Completer, error) {
	completer, err := providers.New(ctx, cfg.Provider, cfg.ProviderOptions()...)
	if err != nil {
		return nil, err
	}

	return providers.NewLimitedPerSecond(cfg.RequestsPerSecond, completer), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) (float32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return float32(f), nil
}

func getEnvAsFloat64(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvAsInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
