package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"DocumentExtractionSystem/pkg/models"
	"DocumentExtractionSystem/pkg/parsers"
	"DocumentExtractionSystem/pkg/providers"
)

// Pipeline turns document text into a ResultEnvelope. It holds no per-request state
// and is safe for concurrent use.
type Pipeline struct {
	completer providers.Completer
	logger    *slog.Logger
}

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline returns a pipeline that sends prompts to completer
func NewPipeline(completer providers.Completer, options ...Option) (*Pipeline, error) {
	if completer == nil {
		return nil, errors.New("extraction pipeline requires a completer")
	}

	p := &Pipeline{
		completer: completer,
	}

	for _, opt := range options {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p, nil
}

// Extract runs prompt building, the model call, reply parsing and normalization.
// It never returns an error: every failure becomes a status 0 envelope.
// The request id is left empty for the caller to fill in.
func (p *Pipeline) Extract(ctx context.Context, documentText string) (result models.ResultEnvelope) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("extract.panic", "panic", r, "elapsed_ms", time.Since(start).Milliseconds())
			result = models.Failure(fmt.Sprint(r))
		}
	}()

	p.logger.Info("extract.start", "text_len", len(documentText))

	fields, err := p.extract(ctx, documentText)
	if err != nil {
		p.logger.Error("extract.failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return models.Failure(err.Error())
	}

	p.logger.Info("extract.ok", "elapsed_ms", time.Since(start).Milliseconds())
	return models.Success(fields)
}

func (p *Pipeline) extract(ctx context.Context, documentText string) (models.ExtractedFields, error) {
	prompt := parsers.BuildPrompt(documentText)

	reply, err := p.completer.Complete(ctx, parsers.SystemPrompt, prompt)
	if err != nil {
		return models.ExtractedFields{}, err
	}

	p.logger.Debug("extract.reply", "reply_len", len(reply))

	return parsers.ParseReply(reply)
}
