package review

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/grammar"
)

// Quality is the SM-2 recall quality score (0..5).
type Quality int

const (
	// QualityBlackout marks an incorrect answer on a never-reviewed item.
	QualityBlackout Quality = 0
	// QualityRecognized marks an incorrect answer on a familiar item.
	QualityRecognized Quality = 2
	// QualitySlow, QualityHesitant and QualityPerfect grade correct answers
	// by response time.
	QualitySlow     Quality = 3
	QualityHesitant Quality = 4
	QualityPerfect  Quality = 5
)

// passThreshold is the quality at which a repetition counts as successful.
const passThreshold = QualitySlow

// Response-time boundaries for grading correct answers.
const (
	fastResponse = 3 * time.Second
	slowResponse = 7 * time.Second
)

// qualityFor maps an attempt outcome to an SM-2 quality score. Incorrect
// answers on a card with prior successful repetitions count as recognized.
func qualityFor(correct bool, responseTime time.Duration, familiar bool) Quality {
	if !correct {
		if familiar {
			return QualityRecognized
		}
		return QualityBlackout
	}
	switch {
	case responseTime < fastResponse:
		return QualityPerfect
	case responseTime <= slowResponse:
		return QualityHesitant
	default:
		return QualitySlow
	}
}

// Attempt records one graded answer, the unit of the error history consumed
// by pattern detection.
type Attempt struct {
	ID           string               `json:"id"`
	Key          Key                  `json:"key"`
	Correct      bool                 `json:"correct"`
	Kind         conjugator.ErrorKind `json:"error_kind,omitempty"`
	Quality      Quality              `json:"quality"`
	ResponseTime time.Duration        `json:"response_time"`
	At           time.Time            `json:"at"`
}

// Scheduler maintains the review cards for a single learner. Updates to a
// card are serialized by the scheduler's mutex; distinct learners use
// distinct Scheduler instances, so no cross-learner coordination exists.
type Scheduler struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces the time source, for deterministic tests.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a scheduler over the given store. A nil store gets
// an in-memory one.
func NewScheduler(store Store, opts ...SchedulerOption) *Scheduler {
	if store == nil {
		store = NewMemoryStore()
	}
	s := &Scheduler{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grade applies one graded attempt to the card for key, creating the card
// on first encounter, and returns the updated card. The SM-2 update:
// quality < 3 resets repetitions to 0 and the interval to 1 day and counts
// a lapse; otherwise the ease factor moves by the SM-2 formula (clamped to
// MinEase) and the interval grows 1 → 6 → round(previous × ease).
func (s *Scheduler) Grade(key Key, correct bool, responseTime time.Duration, kind conjugator.ErrorKind) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	card, found, err := s.store.Load(key)
	if err != nil {
		return Card{}, fmt.Errorf("loading card: %w", err)
	}
	if !found {
		card = NewCard(key, now)
	}

	q := qualityFor(correct, responseTime, card.Repetitions > 0)

	card.Attempts++
	if correct {
		card.Correct++
	}

	if q < passThreshold {
		card.Repetitions = 0
		card.IntervalDays = 1
		card.Lapses++
	} else {
		ease := card.Ease + (0.1 - float64(5-q)*(0.08+float64(5-q)*0.02))
		card.Ease = math.Max(ease, MinEase)

		switch card.Repetitions {
		case 0:
			card.IntervalDays = 1
		case 1:
			card.IntervalDays = 6
		default:
			next := int(math.Round(float64(card.IntervalDays) * card.Ease))
			if next < 1 {
				next = 1
			}
			card.IntervalDays = next
		}
		card.Repetitions++
	}

	card.Due = now.AddDate(0, 0, card.IntervalDays)

	// The attempt goes in first: if the insert fails the card is left
	// untouched, so a card never reflects an attempt the history is
	// missing.
	if err := s.store.RecordAttempt(Attempt{
		ID:           ksuid.New().String(),
		Key:          key,
		Correct:      correct,
		Kind:         kind,
		Quality:      q,
		ResponseTime: responseTime,
		At:           now,
	}); err != nil {
		return Card{}, fmt.Errorf("recording attempt: %w", err)
	}
	if err := s.store.Save(card); err != nil {
		return Card{}, fmt.Errorf("saving card: %w", err)
	}

	return card, nil
}

// NextDue returns up to n due cards, most overdue first, then lowest ease,
// then insertion order. The queue is recomputed on every call.
func (s *Scheduler) NextDue(n int) ([]Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	cards, err := s.store.All()
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}

	due := cards[:0]
	for _, c := range cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		oi, oj := now.Sub(due[i].Due), now.Sub(due[j].Due)
		if oi != oj {
			return oi > oj
		}
		if due[i].Ease != due[j].Ease {
			return due[i].Ease < due[j].Ease
		}
		return due[i].Position < due[j].Position
	})

	if len(due) > n {
		due = due[:n]
	}
	return due, nil
}

// Reset deletes the card for key. This is the only way a card is removed.
func (s *Scheduler) Reset(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Reset(key)
}

// Stats aggregates the learner's scheduling state. Calling it repeatedly
// without intervening Grade calls yields identical output.
type Stats struct {
	Total    int                `json:"total"`
	New      int                `json:"new"`
	Learning int                `json:"learning"`
	Review   int                `json:"review"`
	Mastered int                `json:"mastered"`
	Due      int                `json:"due"`
	Accuracy float64            `json:"accuracy"`
	Tier     grammar.Difficulty `json:"tier"`
}

// Stats computes aggregate counts across all cards.
func (s *Scheduler) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	cards, err := s.store.All()
	if err != nil {
		return Stats{}, fmt.Errorf("listing cards: %w", err)
	}

	var st Stats
	var attempts, correct int
	for _, c := range cards {
		st.Total++
		switch c.State() {
		case StateNew:
			st.New++
		case StateLearning:
			st.Learning++
		case StateReview:
			st.Review++
		case StateMastered:
			st.Mastered++
		}
		if c.IsDue(now) {
			st.Due++
		}
		attempts += c.Attempts
		correct += c.Correct
	}
	if attempts > 0 {
		st.Accuracy = float64(correct) / float64(attempts)
	}
	st.Tier = tierFor(st, attempts)
	return st, nil
}

// tierFor derives the learner's current difficulty tier from accuracy and
// mastery counts: advanced at ≥85% accuracy with ten mastered items,
// beginner below 60% accuracy or under twenty attempts.
func tierFor(st Stats, attempts int) grammar.Difficulty {
	switch {
	case attempts < 20 || st.Accuracy < 0.6:
		return grammar.Beginner
	case st.Accuracy >= 0.85 && st.Mastered >= 10:
		return grammar.Advanced
	default:
		return grammar.Intermediate
	}
}
