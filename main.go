package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"DocumentExtractionSystem/pkg/api"
	"DocumentExtractionSystem/pkg/config"
	"DocumentExtractionSystem/pkg/extraction"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdout)
	stop()

	os.Exit(code)
}

// run serves the API until ctx is done and returns the process exit code
func run(ctx context.Context, logOutput io.Writer) int {
	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	// Initialize the inference client
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

	handler := api.NewHandler(pipeline,
		api.WithLogger(logger),
		api.WithMaxUploadBytes(cfg.MaxUploadBytes),
		api.WithTimeout(cfg.Timeout),
	)

	r := chi.NewRouter()
	handler.SetupRoutes(r)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("Server starting", "port", cfg.Port, "provider", cfg.Provider)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		return 1
	}

	<-done
	return 0
}
