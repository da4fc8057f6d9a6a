package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned by constructors when no credential is configured
	ErrMissingAPIKey = errors.New("api key is not set")

	// ErrNoResponse is returned when the provider answers without any candidate text
	ErrNoResponse = errors.New("no response from model")
)

// Completer sends one system message and one user message to a chat model
// and returns the text of the first candidate.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Name identifies a supported inference provider
type Name string

const (
	OpenAI Name = "openai"
	Gemini Name = "gemini"
)

const defaultTemperature = 0.1

type Config struct {
	apiKey  string
	baseURL string
	model   string

	temperature float32

	client *http.Client
}

type Option func(*Config)

func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.apiKey = key
	}
}

func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.baseURL = url
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

// WithClient sets the HTTP client used for OpenAI requests
func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

// New builds the Completer for the named provider
func New(ctx context.Context, name Name, options ...Option) (Completer, error) {
	switch name {
	case OpenAI:
		return NewOpenAICompleter(options...)
	case Gemini:
		return NewGeminiCompleter(ctx, options...)
	default:
		return nil, fmt.Errorf("unsupported provider: %q", name)
	}
}
