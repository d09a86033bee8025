// Package server implements the HTTP shell around the conversion pipeline.
//
// The shell exposes the converter, the documentation generator, the
// validator, and the dialect detector as JSON endpoints. Conversions are
// pure, so responses are cached by a hash of the request; the cache backend
// is redis when configured and a no-op otherwise.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mermaidtools/drawbridge/pkg/detect"
	"github.com/mermaidtools/drawbridge/pkg/errors"
	"github.com/mermaidtools/drawbridge/pkg/pipeline"
)

// Server handles the HTTP API.
type Server struct {
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
}

// Config configures a Server.
type Config struct {
	// Cache stores conversion responses. Nil disables caching.
	Cache Cache

	// TTL bounds the lifetime of cached responses. Zero means DefaultTTL.
	TTL time.Duration

	// Logger receives request and error logs. Nil uses the default logger.
	Logger *log.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	if cfg.Cache == nil {
		cfg.Cache = NewNullCache()
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{cache: cfg.Cache, ttl: cfg.TTL, logger: cfg.Logger}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/convert", s.handleConvert)
	r.Post("/docs", s.handleDocs)
	r.Post("/validate", s.handleValidate)
	r.Post("/detect", s.handleDetect)

	return r
}

// Close releases the cache.
func (s *Server) Close() error {
	return s.cache.Close()
}

// Run serves the API on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs each request with its duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// =============================================================================
// Request / Response Shapes
// =============================================================================

// ConvertRequest is the JSON body of /convert, /docs, /validate, and /detect.
type ConvertRequest struct {
	Text string `json:"text"`
	Name string `json:"name,omitempty"`
}

// ConvertResponse is the JSON reply of /convert.
type ConvertResponse struct {
	Dialect string         `json:"dialect"`
	Markup  string         `json:"markup"`
	Stats   pipeline.Stats `json:"stats"`
}

// DocsResponse is the JSON reply of /docs.
type DocsResponse struct {
	Dialect string `json:"dialect"`
	Docs    string `json:"docs"`
}

// DetectResponse is the JSON reply of /detect.
type DetectResponse struct {
	Dialect string `json:"dialect"`
}

// ErrorResponse is the JSON error shape of all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	key := cacheKey("convert", req.Text, req.Name)
	if s.replayCached(r.Context(), w, key) {
		return
	}

	result, err := pipeline.Convert(req.Text, pipeline.Options{Name: req.Name, Logger: s.logger})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeCachedJSON(r.Context(), w, key, ConvertResponse{
		Dialect: string(result.Dialect),
		Markup:  result.Markup,
		Stats:   result.Stats,
	})
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	key := cacheKey("docs", req.Text)
	if s.replayCached(r.Context(), w, key) {
		return
	}

	result, err := pipeline.Docs(req.Text, pipeline.Options{Logger: s.logger})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeCachedJSON(r.Context(), w, key, DocsResponse{
		Dialect: string(result.Dialect),
		Docs:    result.Markup,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	// Validation never fails: malformed input is an invalid report.
	s.writeJSON(w, http.StatusOK, pipeline.Validate(req.Text))
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, DetectResponse{Dialect: string(detect.Detect(req.Text))})
}

// =============================================================================
// Helpers
// =============================================================================

// readRequest decodes and validates the common request body. On failure it
// writes the error response and returns false.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (ConvertRequest, bool) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return ConvertRequest{}, false
	}
	return req, true
}

// replayCached writes a cached response if one exists for key.
func (s *Server) replayCached(ctx context.Context, w http.ResponseWriter, key string) bool {
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get failed", "error", err)
		return false
	}
	if !hit {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return true
}

// writeCachedJSON writes the response and stores it in the cache.
func (s *Server) writeCachedJSON(ctx context.Context, w http.ResponseWriter, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache set failed", "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes the JSON error
// shape.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDialect, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeUnknownDialect:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}
