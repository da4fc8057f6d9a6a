package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultOpenAIURL   = "https://api.openai.com/v1/"
	defaultOpenAIModel = "gpt-4"
)

var _ Completer = (*OpenAICompleter)(nil)

type OpenAICompleter struct {
	*Config
	completions openai.ChatCompletionService
}

func NewOpenAICompleter(options ...Option) (*OpenAICompleter, error) {
	cfg := &Config{
		baseURL: defaultOpenAIURL,
		model:   defaultOpenAIModel,

		temperature: defaultTemperature,
	}

	for _, opt := range options {
		opt(cfg)
	}

	if cfg.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY: %w", ErrMissingAPIKey)
	}

	return &OpenAICompleter{
		Config:      cfg,
		completions: openai.NewChatCompletionService(cfg.openAIOptions()...),
	}, nil
}

func (c *Config) openAIOptions() []option.RequestOption {
	if c.client == nil {
		c.client = http.DefaultClient
	}

	if c.baseURL == "" {
		c.baseURL = defaultOpenAIURL
	}

	url := strings.TrimRight(c.baseURL, "/") + "/"

	return []option.RequestOption{
		option.WithBaseURL(url),
		option.WithHTTPClient(c.client),
		option.WithAPIKey(c.apiKey),
		option.WithMaxRetries(0),
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	completion, err := c.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),

		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},

		Temperature: openai.Float(float64(c.temperature)),
	})
	if err != nil {
		return "", fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty choices from OpenAI API: %w", ErrNoResponse)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
