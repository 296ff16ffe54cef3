// Package server provides the HTTP REST API for matching.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/teammatch/internal/config"
	"github.com/jonathan/teammatch/internal/matcher"
	"github.com/jonathan/teammatch/internal/server/middleware"
	"github.com/jonathan/teammatch/internal/server/ratelimit"
	"github.com/jonathan/teammatch/internal/types"
	"go.uber.org/zap"
)

// Store is the persistence the authenticated routes need. *db.DB satisfies it.
type Store interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	GetTarget(ctx context.Context, projectID uuid.UUID) (*types.Target, error)
	ListEligibleTargets(ctx context.Context, userID uuid.UUID) ([]*types.Target, error)
	ListCandidateProfiles(ctx context.Context, projectID uuid.UUID) ([]*types.Profile, error)
	SaveProfileEmbedding(ctx context.Context, userID uuid.UUID, embedding []float32) error
	SaveTargetEmbedding(ctx context.Context, projectID uuid.UUID, embedding []float32) error
	RecordDecision(ctx context.Context, d types.Decision) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	cfg        config.Server
	matcher    *matcher.Matcher
	store      Store
	jwtService *JWTService
	limiter    *ratelimit.Limiter
	logger     *zap.Logger
}

// Options carries the optional collaborators of a Server.
type Options struct {
	// Store enables the authenticated routes; without it they answer 503.
	Store     Store
	RateLimit config.RateLimit
	Logger    *zap.Logger
}

// New creates a new server instance
func New(cfg config.Server, m *matcher.Matcher, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:     cfg,
		matcher: m,
		store:   opts.Store,
		limiter: newLimiter(opts.RateLimit),
		logger:  logger,
	}
	if cfg.JWT.Enabled() {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func newLimiter(rl config.RateLimit) *ratelimit.Limiter {
	whitelist := make(map[string]bool, len(rl.Whitelist))
	for _, ip := range rl.Whitelist {
		whitelist[strings.TrimSpace(ip)] = true
	}
	return ratelimit.NewLimiter(ratelimit.Config{
		Enabled:   rl.Enabled,
		Default:   ratelimit.Rule{Limit: rl.DefaultLimit, Window: rl.Window},
		Rules:     ratelimit.DefaultRules(rl.BatchLimit, rl.Window),
		Whitelist: whitelist,
	})
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Stateless scoring
	mux.HandleFunc("POST /match/score", s.handleScore)
	mux.HandleFunc("POST /match/rank-targets", s.handleRankTargets)
	mux.HandleFunc("POST /match/rank-candidates", s.handleRankCandidates)
	mux.HandleFunc("POST /skills/extract", s.handleExtractSkills)

	// Stored records, caller identified by bearer token
	mux.Handle("GET /me/matches", s.authenticated(s.handleMyMatches))
	mux.Handle("GET /projects/{id}/candidates", s.authenticated(s.handleProjectCandidates))
	mux.Handle("POST /projects/{id}/decision", s.authenticated(s.handleDecision))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// authenticated requires a verified bearer token and a configured store.
func (s *Server) authenticated(h http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.errorResponse(w, http.StatusServiceUnavailable, "authentication is not configured")
		})
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(s.requireStore(h))
}

func (s *Server) requireStore(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "database is not configured")
			return
		}
		h(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	origins := strings.Join(s.cfg.AllowedOrigins, ", ")
	if origins == "" {
		origins = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.limiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			seconds := int(info.RetryAfter.Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"retry_after": seconds,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr))
	})
}

// clientID identifies the caller by IP for rate limiting.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"vocabulary_fit":   s.matcher.Featurizer().Fitted(),
		"vocabulary_terms": s.matcher.Featurizer().VocabularySize(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom maps err to a status and writes it. Server errors are logged
// and their detail withheld from the client.
func (s *Server) errorFrom(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	s.errorResponse(w, status, err.Error())
}
