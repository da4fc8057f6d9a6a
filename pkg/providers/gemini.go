package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

var _ Completer = (*GeminiCompleter)(nil)

type GeminiCompleter struct {
	*Config
	client *genai.Client
}

// NewGeminiCompleter creates the Gemini client once; callers own it and must call Close
func NewGeminiCompleter(ctx context.Context, options ...Option) (*GeminiCompleter, error) {
	cfg := &Config{
		model: defaultGeminiModel,

		temperature: defaultTemperature,
	}

	for _, opt := range options {
		opt(cfg)
	}

	if cfg.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY: %w", ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompleter{
		Config: cfg,
		client: client,
	}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)

	// system instruction goes first, then the user prompt
	resp, err := model.GenerateContent(ctx, genai.Text(system), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("error calling Gemini AI API: %w", err)
	}

	return geminiReplyText(resp)
}

// geminiReplyText joins the text parts of the first candidate
func geminiReplyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates from Gemini AI API: %w", ErrNoResponse)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("unexpected response format from Gemini AI API: %w", ErrNoResponse)
	}

	return strings.TrimSpace(b.String()), nil
}

func (c *GeminiCompleter) Close() error {
	return c.client.Close()
}
