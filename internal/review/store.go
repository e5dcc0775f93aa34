package review

import (
	"errors"
	"sort"
	"sync"
)

// ErrCardNotFound is returned when a card lookup or reset misses.
var ErrCardNotFound = errors.New("review: card not found")

// Store persists review cards and attempt history for one learner.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load fetches the card for key. found is false when no card exists.
	Load(key Key) (card Card, found bool, err error)
	// Save inserts or replaces the card.
	Save(card Card) error
	// All returns every card, in insertion order.
	All() ([]Card, error)
	// Reset deletes the card for key and its attempt history. Returns
	// ErrCardNotFound when the card does not exist.
	Reset(key Key) error
	// RecordAttempt appends one graded attempt to the history.
	RecordAttempt(a Attempt) error
	// Attempts returns the recorded history, oldest first.
	Attempts() ([]Attempt, error)
}

// MemoryStore keeps cards and attempts in process memory. It is the
// default backend and the one used in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	cards    map[Key]Card
	attempts []Attempt
	nextPos  int64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cards: make(map[Key]Card)}
}

func (s *MemoryStore) Load(key Key) (Card, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[key]
	return card, ok, nil
}

func (s *MemoryStore) Save(card Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.cards[card.Key]; ok {
		card.Position = existing.Position
	} else {
		card.Position = s.nextPos
		s.nextPos++
	}
	s.cards[card.Key] = card
	return nil
}

func (s *MemoryStore) All() ([]Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *MemoryStore) Reset(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[key]; !ok {
		return ErrCardNotFound
	}
	delete(s.cards, key)
	kept := s.attempts[:0]
	for _, a := range s.attempts {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	s.attempts = kept
	return nil
}

func (s *MemoryStore) RecordAttempt(a Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, a)
	return nil
}

func (s *MemoryStore) Attempts() ([]Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out, nil
}
