// Package api exposes the trainer over HTTP: exercise generation, answer
// grading, the review queue, learner statistics, conjugation tables and a
// websocket practice session.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/exercise"
	"github.com/ojala-app/ojala/internal/platform/cache"
	"github.com/ojala-app/ojala/internal/platform/database"
	"github.com/ojala-app/ojala/internal/review"
)

// Server holds the handler dependencies. DB and Cache may be nil; readyz
// then skips them and the practice session keeps its state in memory only.
type Server struct {
	logger    *slog.Logger
	engine    *conjugator.Engine
	generator *exercise.Generator
	registry  *review.Registry
	db        *database.DB
	cache     *cache.Cache

	keyHash       string
	sessionTTL    time.Duration
	writeTimeout  time.Duration
	exerciseBatch int

	// genMu serializes generator access; the generator's rand source is
	// unsynchronized.
	genMu sync.Mutex
}

// Config collects the server's dependencies and settings.
type Config struct {
	Logger    *slog.Logger
	Engine    *conjugator.Engine
	Generator *exercise.Generator
	Registry  *review.Registry
	DB        *database.DB
	Cache     *cache.Cache

	// KeyHash is the bcrypt hash of the accepted API key. Empty disables
	// authentication.
	KeyHash string

	SessionTTL    time.Duration
	WriteTimeout  time.Duration
	ExerciseBatch int
}

// NewServer wires the handlers. Engine, Generator and Registry are
// required.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger:        logger,
		engine:        cfg.Engine,
		generator:     cfg.Generator,
		registry:      cfg.Registry,
		db:            cfg.DB,
		cache:         cfg.Cache,
		keyHash:       cfg.KeyHash,
		sessionTTL:    cfg.SessionTTL,
		writeTimeout:  cfg.WriteTimeout,
		exerciseBatch: cfg.ExerciseBatch,
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 30 * time.Minute
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = 5 * time.Second
	}
	if s.exerciseBatch <= 0 {
		s.exerciseBatch = 10
	}
	return s
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.Handle("POST /v1/exercises", s.auth(http.HandlerFunc(s.handleGenerateExercises)))
	mux.Handle("POST /v1/attempts", s.auth(http.HandlerFunc(s.handleSubmitAttempt)))
	mux.Handle("GET /v1/review/queue", s.auth(http.HandlerFunc(s.handleReviewQueue)))
	mux.Handle("POST /v1/review/reset", s.auth(http.HandlerFunc(s.handleReviewReset)))
	mux.Handle("GET /v1/stats", s.auth(http.HandlerFunc(s.handleStats)))
	mux.Handle("GET /v1/patterns", s.auth(http.HandlerFunc(s.handlePatterns)))
	mux.Handle("GET /v1/verbs/{verb}/table", s.auth(http.HandlerFunc(s.handleConjugationTable)))
	mux.Handle("GET /v1/practice", s.auth(http.HandlerFunc(s.handlePractice)))

	return s.logRequests(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Warn("readyz database check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
	}
	if s.cache != nil {
		if err := s.cache.HealthCheck(ctx); err != nil {
			s.logger.Warn("readyz cache check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "cache unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
