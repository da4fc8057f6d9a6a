package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"DocumentExtractionSystem/pkg/config"
	"DocumentExtractionSystem/pkg/extraction"
	"DocumentExtractionSystem/pkg/models"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run extracts fields from one file, prints the envelope to stdout and returns the exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fileFlag := fs.String("file", "", "path of the text document to extract from")
	providerFlag := fs.String("provider", "", "inference provider (openai or gemini), overrides LLM_PROVIDER")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if *fileFlag == "" {
		logger.Error("usage: extract -file <path> [-provider openai|gemini]")
		return 2
	}

	if *providerFlag != "" {
		os.Setenv("LLM_PROVIDER", strings.ToLower(*providerFlag))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	content, err := os.ReadFile(*fileFlag)
	if err != nil {
		logger.Error("read file", "file", *fileFlag, "error", err)
		return 1
	}

	if int64(len(content)) > cfg.MaxUploadBytes {
		logger.Error("file too large", "file", *fileFlag, "size", len(content), "max", cfg.MaxUploadBytes)
		return 1
	}

	if !utf8.Valid(content) {
		logger.Error("could not decode file content as UTF-8 text", "file", *fileFlag)
		return 1
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	completer, err := config.InitCompleter(ctx, cfg)
	if err != nil {
		logger.Error("failed to create inference client", "provider", cfg.Provider, "error", err)
		return 1
	}
	if closer, ok := completer.(io.Closer); ok {
		defer closer.Close()
	}

	pipeline, err := extraction.NewPipeline(completer, extraction.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create extraction pipeline", "error", err)
		return 1
	}

	result := pipeline.Extract(ctx, string(content)).WithRequestID(uuid.New().String())

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(result); err != nil {
		logger.Error("write result", "error", err)
		return 1
	}

	if result.Status != models.StatusSuccess {
		return 1
	}
	return 0
}
