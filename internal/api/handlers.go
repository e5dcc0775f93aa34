package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/exercise"
	"github.com/ojala-app/ojala/internal/feedback"
	"github.com/ojala-app/ojala/internal/grammar"
	"github.com/ojala-app/ojala/internal/review"
)

// exerciseItem is the wire shape of a generated exercise. The correct
// answer stays server-side; grading happens through POST /v1/attempts.
type exerciseItem struct {
	ID         string             `json:"id"`
	Prompt     string             `json:"prompt"`
	Verb       string             `json:"verb"`
	Tense      grammar.Tense      `json:"tense"`
	Person     grammar.Person     `json:"person"`
	Category   grammar.Category   `json:"category"`
	Difficulty grammar.Difficulty `json:"difficulty"`
	Trigger    string             `json:"trigger"`
	Hint       string             `json:"hint,omitempty"`
}

func toWireItem(it exercise.Item) exerciseItem {
	return exerciseItem{
		ID:         it.ID,
		Prompt:     it.Prompt,
		Verb:       it.Verb,
		Tense:      it.Tense,
		Person:     it.Person,
		Category:   it.Category,
		Difficulty: it.Difficulty,
		Trigger:    it.Trigger,
		Hint:       it.Hint,
	}
}

type generateRequest struct {
	LearnerID  string             `json:"learner_id"`
	Difficulty grammar.Difficulty `json:"difficulty"`
	Categories []grammar.Category `json:"categories,omitempty"`
	Count      int                `json:"count"`
}

func (s *Server) handleGenerateExercises(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if !req.Difficulty.IsValid() {
		respondError(w, http.StatusBadRequest, "difficulty is required")
		return
	}
	count := req.Count
	if count < 1 {
		count = 1
	}
	if count > 50 {
		count = 50
	}

	items, err := s.generateSet(req.LearnerID, count, req.Difficulty, req.Categories...)
	if err != nil {
		if errors.Is(err, exercise.ErrNoVerbsAvailable) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("exercise generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "exercise generation failed")
		return
	}

	out := make([]exerciseItem, len(items))
	for i, it := range items {
		out[i] = toWireItem(it)
	}
	respondJSON(w, http.StatusOK, map[string]any{"exercises": out})
}

// generateSet serializes generator access and biases the pool toward the
// learner's recurring weak spots when history exists.
func (s *Server) generateSet(learnerID string, n int, d grammar.Difficulty, cats ...grammar.Category) ([]exercise.Item, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	// The generator is shared across learners, so the bias is recomputed
	// on every call; a learner with no history gets the unbiased pool.
	var weak []grammar.Class
	if learnerID != "" {
		if store, err := s.registry.StoreFor(learnerID); err == nil {
			if history, err := store.Attempts(); err == nil && len(history) > 0 {
				patterns := feedback.DetectPatterns(s.engine.Tables(), history, 3)
				weak = feedback.WeakClasses(patterns)
			}
		}
	}
	s.generator.BiasTowards(weak)

	return s.generator.GenerateSet(n, d, cats...)
}

type attemptRequest struct {
	LearnerID  string           `json:"learner_id"`
	Verb       string           `json:"verb"`
	Tense      grammar.Tense    `json:"tense"`
	Person     grammar.Person   `json:"person"`
	Answer     string           `json:"answer"`
	ResponseMs int64            `json:"response_ms"`
	Category   grammar.Category `json:"category,omitempty"`
	Trigger    string           `json:"trigger,omitempty"`
}

type attemptResponse struct {
	Validation conjugator.Validation `json:"validation"`
	Feedback   feedback.Feedback     `json:"feedback"`
	Card       review.Card           `json:"card"`
}

func (s *Server) handleSubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.LearnerID == "" {
		respondError(w, http.StatusBadRequest, "learner_id is required")
		return
	}

	validation, err := s.engine.Validate(req.Verb, req.Tense, req.Person, req.Answer)
	if err != nil {
		s.respondConjugatorError(w, err)
		return
	}

	verb, _ := s.engine.Tables().Verb(req.Verb)
	fb := feedback.Generate(validation, feedback.Context{
		Category: req.Category,
		Trigger:  req.Trigger,
		Verb:     verb,
	})

	sched, err := s.registry.For(req.LearnerID)
	if err != nil {
		s.logger.Error("scheduler lookup failed", "learner_id", req.LearnerID, "error", err)
		respondError(w, http.StatusInternalServerError, "scheduler unavailable")
		return
	}
	key := review.Key{Verb: req.Verb, Tense: req.Tense, Person: req.Person}
	card, err := sched.Grade(key, validation.Correct, time.Duration(req.ResponseMs)*time.Millisecond, validation.Kind)
	if err != nil {
		s.logger.Error("grading failed", "learner_id", req.LearnerID, "key", key.String(), "error", err)
		respondError(w, http.StatusInternalServerError, "grading failed")
		return
	}

	respondJSON(w, http.StatusOK, attemptResponse{
		Validation: validation,
		Feedback:   fb,
		Card:       card,
	})
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learner_id")
	if learnerID == "" {
		respondError(w, http.StatusBadRequest, "learner_id is required")
		return
	}
	limit := queryInt(r, "limit", 20)

	sched, err := s.registry.For(learnerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "scheduler unavailable")
		return
	}
	due, err := sched.NextDue(limit)
	if err != nil {
		s.logger.Error("review queue failed", "learner_id", learnerID, "error", err)
		respondError(w, http.StatusInternalServerError, "review queue failed")
		return
	}
	if due == nil {
		due = []review.Card{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"due": due})
}

type resetRequest struct {
	LearnerID string         `json:"learner_id"`
	Verb      string         `json:"verb"`
	Tense     grammar.Tense  `json:"tense"`
	Person    grammar.Person `json:"person"`
}

func (s *Server) handleReviewReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.LearnerID == "" {
		respondError(w, http.StatusBadRequest, "learner_id is required")
		return
	}
	sched, err := s.registry.For(req.LearnerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "scheduler unavailable")
		return
	}
	key := review.Key{Verb: req.Verb, Tense: req.Tense, Person: req.Person}
	if err := sched.Reset(key); err != nil {
		if errors.Is(err, review.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "card not found")
			return
		}
		s.logger.Error("reset failed", "key", key.String(), "error", err)
		respondError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learner_id")
	if learnerID == "" {
		respondError(w, http.StatusBadRequest, "learner_id is required")
		return
	}
	sched, err := s.registry.For(learnerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "scheduler unavailable")
		return
	}
	stats, err := sched.Stats()
	if err != nil {
		s.logger.Error("stats failed", "learner_id", learnerID, "error", err)
		respondError(w, http.StatusInternalServerError, "stats failed")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learner_id")
	if learnerID == "" {
		respondError(w, http.StatusBadRequest, "learner_id is required")
		return
	}
	minFreq := queryInt(r, "min_frequency", 3)

	store, err := s.registry.StoreFor(learnerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	history, err := store.Attempts()
	if err != nil {
		s.logger.Error("attempt history failed", "learner_id", learnerID, "error", err)
		respondError(w, http.StatusInternalServerError, "attempt history failed")
		return
	}
	patterns := feedback.DetectPatterns(s.engine.Tables(), history, minFreq)
	if patterns == nil {
		patterns = []feedback.Pattern{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"patterns": patterns})
}

func (s *Server) handleConjugationTable(w http.ResponseWriter, r *http.Request) {
	verb := r.PathValue("verb")

	var tense grammar.Tense
	if err := tense.UnmarshalText([]byte(r.URL.Query().Get("tense"))); err != nil {
		respondError(w, http.StatusBadRequest, "invalid tense")
		return
	}

	table, err := s.engine.Table(verb, tense)
	if err != nil {
		s.respondConjugatorError(w, err)
		return
	}

	forms := make(map[string]conjugator.Result, len(table))
	for p, res := range table {
		forms[p.String()] = res
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"verb":  verb,
		"tense": tense,
		"forms": forms,
	})
}

func (s *Server) respondConjugatorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, conjugator.ErrUnknownVerb):
		respondError(w, http.StatusNotFound, "unknown verb")
	case errors.Is(err, conjugator.ErrInvalidTense), errors.Is(err, conjugator.ErrInvalidPerson):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("conjugation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "conjugation failed")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
