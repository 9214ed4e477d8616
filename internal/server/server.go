// Package server provides the HTTP REST API for the screening engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/searchfind/screening-engine/internal/config"
	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/metrics"
	"github.com/searchfind/screening-engine/internal/server/ratelimit"
	"github.com/searchfind/screening-engine/internal/service"
)

const (
	shutdownTimeout = 30 * time.Second
	maxJSONBody     = 10 << 20
	maxUploadBody   = 25 << 20
)

// Server is the HTTP front end of a service.Service.
type Server struct {
	httpServer  *http.Server
	service     *service.Service
	metrics     *metrics.Metrics
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	logger      logging.Logger
}

// Options configures a Server.
type Options struct {
	Server    config.ServerConfig
	RateLimit *ratelimit.Config
	Service   *service.Service
	Metrics   *metrics.Metrics
	Logger    logging.Logger
}

// New creates a server. It does not start listening.
func New(opts Options) *Server {
	s := &Server{
		service:     opts.Service,
		metrics:     opts.Metrics,
		rateLimiter: ratelimit.NewLimiter(opts.RateLimit),
		validate:    newValidator(),
		logger:      opts.Logger,
	}
	if s.logger == nil {
		s.logger = logging.NewNoOpLogger()
	}
	if s.service == nil {
		s.service = service.New(service.Deps{Metrics: s.metrics, Logger: s.logger})
	}

	port := opts.Server.Port
	if port == 0 {
		port = 8080
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  opts.Server.ReadTimeout,
		WriteTimeout: opts.Server.WriteTimeout,
		IdleTimeout:  opts.Server.IdleTimeout,
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /documents/validate", s.handleValidateDocument)
	mux.HandleFunc("POST /documents/validate-resume", s.handleValidateResume)
	mux.HandleFunc("POST /documents/parse", s.handleParseDocument)

	mux.HandleFunc("POST /screenings", s.handleScreen)
	mux.HandleFunc("POST /screenings/bulk", s.handleBulkScreen)
	mux.HandleFunc("GET /screenings/bulk/{id}", s.handleGetBulk)
	mux.HandleFunc("GET /screenings/{id}", s.handleGetScreening)
	mux.HandleFunc("POST /criteria", s.handleCriteria)

	mux.HandleFunc("POST /cover-letters/analyze", s.handleAnalyzeCoverLetter)
	mux.HandleFunc("POST /job-postings/analyze", s.handleAnalyzeJobPosting)
	mux.HandleFunc("POST /job-postings/optimize-requirements", s.handleOptimizeRequirements)

	mux.HandleFunc("POST /resumes/analyze", s.handleAnalyzeResume)
	mux.HandleFunc("POST /resumes/improvements", s.handleImprovementPlan)
	mux.HandleFunc("POST /matches", s.handleMatch)
	mux.HandleFunc("POST /matches/candidates", s.handleRankCandidates)
	mux.HandleFunc("POST /qualifications", s.handleQualification)
	mux.HandleFunc("POST /qualifications/batch", s.handleQualificationBatch)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return s.withRecover(s.withRateLimit(s.withLogging(s.withCORS(mux))))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", map[string]interface{}{"addr": s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped", nil)
	return nil
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their per-route budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		fields := map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"bytes":       rec.bytes,
			"remote":      r.RemoteAddr,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		switch {
		case rec.status >= 500:
			s.logger.Error("request failed", fields)
		case r.URL.Path == "/health" || r.URL.Path == "/metrics":
			s.logger.Debug("request completed", fields)
		default:
			s.logger.Info("request completed", fields)
		}
	})
}

// withRecover turns a handler panic into a 500.
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic", map[string]interface{}{"path": r.URL.Path, "panic": fmt.Sprint(rec)})
				s.errorResponse(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"persistence": s.service.HasStore(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Warn("failed to encode response", nil)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it. Internal errors are logged and
// their details withheld from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusBadRequest {
		msg = validationMessage(err)
	}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.WithError(err).Error("request error", map[string]interface{}{"path": r.URL.Path, "status": status})
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
	}
	s.errorResponse(w, status, msg)
}

// clientID identifies the caller by the IP of the connection.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate limit exceeded, try again later",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds() + 0.999)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded", map[string]interface{}{
		"client": clientID(r),
		"path":   r.URL.Path,
		"limit":  info.Limit,
	})
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
