package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"DocumentExtractionSystem/pkg/config"
	"DocumentExtractionSystem/pkg/models"
)

// multipartSlack is the room left on top of the upload limit for multipart framing
const multipartSlack = 1 << 20

// Extractor runs the extraction pipeline on decoded document text
type Extractor interface {
	Extract(ctx context.Context, documentText string) models.ResultEnvelope
}

// Handler serves the extraction API
type Handler struct {
	extractor Extractor
	logger    *slog.Logger

	maxUploadBytes int64
	timeout        time.Duration
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		h.maxUploadBytes = n
	}
}

// WithTimeout bounds how long one extraction may wait on the model. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.timeout = d
	}
}

func NewHandler(extractor Extractor, options ...Option) *Handler {
	h := &Handler{
		extractor:      extractor,
		maxUploadBytes: config.DefaultMaxUploadBytes,
	}

	for _, opt := range options {
		opt(h)
	}

	if h.logger == nil {
		h.logger = slog.Default()
	}

	return h
}

// SetupRoutes configures the HTTP routes for the application
func (h *Handler) SetupRoutes(r chi.Router) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(h.logRequests)

	r.Get("/health", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", h.handleExtract)
	})
}

// Routes returns a router with every route attached
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.SetupRoutes(r)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExtract handles the /api/v1/extract endpoint
func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	// Cap the body so oversized uploads fail while parsing instead of filling the disk
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartSlack)

	// Get the file from the request
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, h.tooLargeDetail())
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	// Check file size
	if header.Size > h.maxUploadBytes {
		writeError(w, http.StatusBadRequest, h.tooLargeDetail())
		return
	}

	// Read the file content
	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("http.read_upload_failed", "request_id", requestID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error processing file: "+err.Error())
		return
	}

	if len(content) == 0 {
		writeError(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}

	if !utf8.Valid(content) {
		writeError(w, http.StatusBadRequest, "Could not decode file content as UTF-8 text")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	// Pipeline failures are reported inside the envelope, not through the HTTP status
	result := h.extractor.Extract(ctx, string(content)).WithRequestID(requestID)

	h.logger.Info("http.extract",
		"request_id", requestID,
		"file_name", header.Filename,
		"file_size", len(content),
		"status", result.Status,
	)

	writeJson(w, http.StatusOK, result)
}

func (h *Handler) tooLargeDetail() string {
	return fmt.Sprintf("File too large. Maximum size is %d bytes", h.maxUploadBytes)
}

func writeJson(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJson(w, code, models.GatewayError{Detail: detail})
}
