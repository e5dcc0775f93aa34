package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/segmentio/ksuid"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/exercise"
	"github.com/ojala-app/ojala/internal/feedback"
	"github.com/ojala-app/ojala/internal/grammar"
	"github.com/ojala-app/ojala/internal/review"
)

// practiceSession is the state of one live run through an exercise batch.
// With a cache configured it survives reconnects for the session TTL.
type practiceSession struct {
	ID         string          `json:"id"`
	LearnerID  string          `json:"learner_id"`
	Difficulty string          `json:"difficulty"`
	Items      []exercise.Item `json:"items"`
	Index      int             `json:"index"`
	Correct    int             `json:"correct"`
	StartedAt  time.Time       `json:"started_at"`
}

// Client messages.
type practiceInbound struct {
	Type       string `json:"type"` // "answer" or "quit"
	Answer     string `json:"answer,omitempty"`
	ResponseMs int64  `json:"response_ms,omitempty"`
}

// Server messages.
type practiceOutbound struct {
	Type      string                 `json:"type"` // "exercise", "result", "summary", "error"
	SessionID string                 `json:"session_id,omitempty"`
	Number    int                    `json:"number,omitempty"`
	Total     int                    `json:"total,omitempty"`
	Exercise  *exerciseItem          `json:"exercise,omitempty"`
	Result    *conjugator.Validation `json:"result,omitempty"`
	Feedback  *feedback.Feedback     `json:"feedback,omitempty"`
	Card      *review.Card           `json:"card,omitempty"`
	Correct   int                    `json:"correct,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learner_id")
	if learnerID == "" {
		respondError(w, http.StatusBadRequest, "learner_id is required")
		return
	}

	var difficulty grammar.Difficulty
	diffParam := r.URL.Query().Get("difficulty")
	if diffParam == "" {
		diffParam = "beginner"
	}
	if err := difficulty.UnmarshalText([]byte(diffParam)); err != nil {
		respondError(w, http.StatusBadRequest, "invalid difficulty")
		return
	}

	session, err := s.resumeOrStartSession(r.Context(), r.URL.Query().Get("session_id"), learnerID, difficulty)
	if err != nil {
		if errors.Is(err, exercise.ErrNoVerbsAvailable) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("practice session start failed", "learner_id", learnerID, "error", err)
		respondError(w, http.StatusInternalServerError, "session start failed")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "session aborted")

	s.runPractice(r.Context(), conn, session)
}

// resumeOrStartSession loads a cached session by id, or builds a fresh
// batch of exercises.
func (s *Server) resumeOrStartSession(ctx context.Context, sessionID, learnerID string, difficulty grammar.Difficulty) (*practiceSession, error) {
	if sessionID != "" && s.cache != nil {
		var session practiceSession
		err := s.cache.GetJSON(ctx, sessionKey(sessionID), &session)
		if err == nil && session.LearnerID == learnerID {
			return &session, nil
		}
		// Expired or foreign session ids fall through to a fresh start.
	}

	items, err := s.generateSet(learnerID, s.exerciseBatch, difficulty)
	if err != nil {
		return nil, err
	}
	return &practiceSession{
		ID:         ksuid.New().String(),
		LearnerID:  learnerID,
		Difficulty: difficulty.String(),
		Items:      items,
		StartedAt:  time.Now(),
	}, nil
}

func (s *Server) runPractice(ctx context.Context, conn *websocket.Conn, session *practiceSession) {
	sched, err := s.registry.For(session.LearnerID)
	if err != nil {
		s.wsSend(ctx, conn, practiceOutbound{Type: "error", Error: "scheduler unavailable"})
		conn.Close(websocket.StatusInternalError, "scheduler unavailable")
		return
	}

	for session.Index < len(session.Items) {
		item := session.Items[session.Index]
		wire := toWireItem(item)
		out := practiceOutbound{
			Type:      "exercise",
			SessionID: session.ID,
			Number:    session.Index + 1,
			Total:     len(session.Items),
			Exercise:  &wire,
		}
		if err := s.wsSend(ctx, conn, out); err != nil {
			s.saveSession(session)
			return
		}

		var in practiceInbound
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			s.saveSession(session)
			return
		}
		if in.Type == "quit" {
			break
		}
		if in.Type != "answer" {
			_ = s.wsSend(ctx, conn, practiceOutbound{Type: "error", Error: fmt.Sprintf("unexpected message type %q", in.Type)})
			continue
		}

		validation, err := s.engine.Validate(item.Verb, item.Tense, item.Person, in.Answer)
		if err != nil {
			_ = s.wsSend(ctx, conn, practiceOutbound{Type: "error", Error: "validation failed"})
			continue
		}

		verb, _ := s.engine.Tables().Verb(item.Verb)
		fb := feedback.Generate(validation, feedback.Context{
			Category: item.Category,
			Trigger:  item.Trigger,
			Verb:     verb,
		})

		key := review.Key{Verb: item.Verb, Tense: item.Tense, Person: item.Person}
		card, err := sched.Grade(key, validation.Correct, time.Duration(in.ResponseMs)*time.Millisecond, validation.Kind)
		if err != nil {
			s.logger.Error("practice grading failed", "key", key.String(), "error", err)
			_ = s.wsSend(ctx, conn, practiceOutbound{Type: "error", Error: "grading failed"})
			continue
		}

		if validation.Correct {
			session.Correct++
		}
		session.Index++
		s.saveSession(session)

		result := practiceOutbound{
			Type:     "result",
			Result:   &validation,
			Feedback: &fb,
			Card:     &card,
		}
		if err := s.wsSend(ctx, conn, result); err != nil {
			return
		}
	}

	summary := practiceOutbound{
		Type:      "summary",
		SessionID: session.ID,
		Total:     len(session.Items),
		Number:    session.Index,
		Correct:   session.Correct,
	}
	_ = s.wsSend(ctx, conn, summary)
	s.dropSession(session)
	conn.Close(websocket.StatusNormalClosure, "session complete")
}

func (s *Server) wsSend(ctx context.Context, conn *websocket.Conn, msg practiceOutbound) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, msg)
}

// saveSession persists progress so a dropped connection can resume. No
// cache means no resume; the session lives only in the connection.
func (s *Server) saveSession(session *practiceSession) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.cache.SetJSON(ctx, sessionKey(session.ID), session, s.sessionTTL); err != nil {
		s.logger.Warn("session save failed", "session_id", session.ID, "error", err)
	}
}

func (s *Server) dropSession(session *practiceSession) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionKey(session.ID)); err != nil {
		s.logger.Warn("session delete failed", "session_id", session.ID, "error", err)
	}
}

func sessionKey(id string) string {
	return "practice:session:" + id
}
