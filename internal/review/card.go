// Package review implements the SM-2-derived spaced repetition scheduler
// that tracks per-item mastery and due dates.
package review

import (
	"encoding"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ojala-app/ojala/internal/grammar"
)

// Key identifies a review item: one scheduling record exists per
// (verb, tense, person).
type Key struct {
	Verb   string         `json:"verb"`
	Tense  grammar.Tense  `json:"tense"`
	Person grammar.Person `json:"person"`
}

// String returns a stable textual form, used in logs and cache keys.
func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s", k.Verb, k.Tense, k.Person)
}

// Card is the scheduling record for one item. Cards are owned by the
// scheduler: state changes only through Scheduler.Grade, and the ease
// factor never drops below MinEase.
type Card struct {
	Key          Key       `json:"key"`
	Repetitions  int       `json:"repetitions"`
	Ease         float64   `json:"ease"`
	IntervalDays int       `json:"interval_days"`
	Due          time.Time `json:"due"`
	Lapses       int       `json:"lapses"`
	Attempts     int       `json:"attempts"`
	Correct      int       `json:"correct"`
	CreatedAt    time.Time `json:"created_at"`

	// Position is the insertion order within the store, the final tie-break
	// for due ordering.
	Position int64 `json:"position"`
}

const (
	// DefaultEase is the starting ease factor for a new card.
	DefaultEase = 2.5
	// MinEase is the floor the ease factor is clamped to.
	MinEase = 1.3

	// masteredRepetitions and masteredIntervalDays define the mastered state.
	masteredRepetitions  = 5
	masteredIntervalDays = 21
)

// NewCard creates a card with default scheduling state, due immediately.
func NewCard(key Key, now time.Time) Card {
	return Card{
		Key:       key,
		Ease:      DefaultEase,
		Due:       now,
		CreatedAt: now,
	}
}

// IsDue reports whether the card needs review at the given time. Cards
// never attempted are always due.
func (c Card) IsDue(now time.Time) bool {
	if c.Attempts == 0 {
		return true
	}
	return !c.Due.After(now)
}

// State is the implicit learning stage of a card, derived from repetition
// count and interval rather than stored.
type State int

const (
	StateNew State = iota + 1
	StateLearning
	StateReview
	StateMastered
)

var (
	stateNames = [...]string{
		StateNew:      "new",
		StateLearning: "learning",
		StateReview:   "review",
		StateMastered: "mastered",
	}
	stateByName = map[string]State{
		"new": StateNew, "learning": StateLearning,
		"review": StateReview, "mastered": StateMastered,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = State(0)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

// IsValid reports whether s is a known state.
func (s State) IsValid() bool {
	return s >= StateNew && s <= StateMastered
}

// String returns the state name ("new", "learning", "review", "mastered").
// For invalid values it returns "State(n)".
func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("review: invalid state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("review: invalid state: %q", text)
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. State serializes as a JSON string.
func (s State) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *State) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("review: invalid state: %s", data)
	}
	return s.UnmarshalText([]byte(str))
}

// State derives the learning stage: new before any attempt, mastered at
// five repetitions with a three-week interval, learning before the second
// successful repetition, review otherwise.
func (c Card) State() State {
	switch {
	case c.Attempts == 0:
		return StateNew
	case c.Repetitions >= masteredRepetitions && c.IntervalDays >= masteredIntervalDays:
		return StateMastered
	case c.Repetitions < 2:
		return StateLearning
	default:
		return StateReview
	}
}
