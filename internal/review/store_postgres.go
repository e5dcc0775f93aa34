package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ojala-app/ojala/internal/conjugator"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store scoped to one learner.
type PostgresStore struct {
	pool      *pgxpool.Pool
	learnerID string
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a card store for the given learner.
func NewPostgresStore(pool *pgxpool.Pool, learnerID string) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if learnerID == "" {
		return nil, fmt.Errorf("learner id is required")
	}
	return &PostgresStore{pool: pool, learnerID: learnerID}, nil
}

func (s *PostgresStore) Load(key Key) (Card, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var (
		card  Card
		tense string
		pers  string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT verb, tense, person, repetitions, ease, interval_days, due,
		        lapses, attempts, correct, created_at, position
		 FROM review_cards
		 WHERE learner_id = $1 AND verb = $2 AND tense = $3 AND person = $4
		 LIMIT 1`,
		s.learnerID, key.Verb, key.Tense.String(), key.Person.String(),
	).Scan(
		&card.Key.Verb, &tense, &pers, &card.Repetitions, &card.Ease,
		&card.IntervalDays, &card.Due, &card.Lapses, &card.Attempts,
		&card.Correct, &card.CreatedAt, &card.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Card{}, false, nil
		}
		return Card{}, false, fmt.Errorf("load card: %w", err)
	}
	if err := card.Key.Tense.UnmarshalText([]byte(tense)); err != nil {
		return Card{}, false, fmt.Errorf("parse tense: %w", err)
	}
	if err := card.Key.Person.UnmarshalText([]byte(pers)); err != nil {
		return Card{}, false, fmt.Errorf("parse person: %w", err)
	}
	return card, true, nil
}

func (s *PostgresStore) Save(card Card) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO review_cards
		   (learner_id, verb, tense, person, repetitions, ease, interval_days,
		    due, lapses, attempts, correct, created_at, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		         COALESCE((SELECT MAX(position) + 1 FROM review_cards WHERE learner_id = $1), 0))
		 ON CONFLICT (learner_id, verb, tense, person) DO UPDATE SET
		   repetitions = EXCLUDED.repetitions,
		   ease = EXCLUDED.ease,
		   interval_days = EXCLUDED.interval_days,
		   due = EXCLUDED.due,
		   lapses = EXCLUDED.lapses,
		   attempts = EXCLUDED.attempts,
		   correct = EXCLUDED.correct`,
		s.learnerID, card.Key.Verb, card.Key.Tense.String(), card.Key.Person.String(),
		card.Repetitions, card.Ease, card.IntervalDays, card.Due,
		card.Lapses, card.Attempts, card.Correct, card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

func (s *PostgresStore) All() ([]Card, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT verb, tense, person, repetitions, ease, interval_days, due,
		        lapses, attempts, correct, created_at, position
		 FROM review_cards
		 WHERE learner_id = $1
		 ORDER BY position ASC`,
		s.learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []Card
	for rows.Next() {
		var (
			card  Card
			tense string
			pers  string
		)
		if err := rows.Scan(
			&card.Key.Verb, &tense, &pers, &card.Repetitions, &card.Ease,
			&card.IntervalDays, &card.Due, &card.Lapses, &card.Attempts,
			&card.Correct, &card.CreatedAt, &card.Position,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		if err := card.Key.Tense.UnmarshalText([]byte(tense)); err != nil {
			return nil, fmt.Errorf("parse tense: %w", err)
		}
		if err := card.Key.Person.UnmarshalText([]byte(pers)); err != nil {
			return nil, fmt.Errorf("parse person: %w", err)
		}
		out = append(out, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Reset(key Key) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	cmd, err := s.pool.Exec(ctx,
		`DELETE FROM review_cards
		 WHERE learner_id = $1 AND verb = $2 AND tense = $3 AND person = $4`,
		s.learnerID, key.Verb, key.Tense.String(), key.Person.String(),
	)
	if err != nil {
		return fmt.Errorf("reset card: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCardNotFound
	}

	if _, err := s.pool.Exec(ctx,
		`DELETE FROM review_attempts
		 WHERE learner_id = $1 AND verb = $2 AND tense = $3 AND person = $4`,
		s.learnerID, key.Verb, key.Tense.String(), key.Person.String(),
	); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecordAttempt(a Attempt) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO review_attempts
		   (id, learner_id, verb, tense, person, correct, error_kind,
		    quality, response_ms, at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, s.learnerID, a.Key.Verb, a.Key.Tense.String(), a.Key.Person.String(),
		a.Correct, nullIfEmpty(string(a.Kind)), int(a.Quality),
		a.ResponseTime.Milliseconds(), a.At,
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (s *PostgresStore) Attempts() ([]Attempt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id, verb, tense, person, correct, error_kind, quality, response_ms, at
		 FROM review_attempts
		 WHERE learner_id = $1
		 ORDER BY at ASC`,
		s.learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a       Attempt
			tense   string
			pers    string
			kind    *string
			quality int
			ms      int64
		)
		if err := rows.Scan(&a.ID, &a.Key.Verb, &tense, &pers, &a.Correct,
			&kind, &quality, &ms, &a.At); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := a.Key.Tense.UnmarshalText([]byte(tense)); err != nil {
			return nil, fmt.Errorf("parse tense: %w", err)
		}
		if err := a.Key.Person.UnmarshalText([]byte(pers)); err != nil {
			return nil, fmt.Errorf("parse person: %w", err)
		}
		if kind != nil {
			a.Kind = conjugator.ErrorKind(*kind)
		}
		a.Quality = Quality(quality)
		a.ResponseTime = time.Duration(ms) * time.Millisecond
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// Schema returns the DDL the postgres store expects. The tense and person
// columns store wire names as defined in the grammar package.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS review_cards (
  learner_id    TEXT        NOT NULL,
  verb          TEXT        NOT NULL,
  tense         TEXT        NOT NULL,
  person        TEXT        NOT NULL,
  repetitions   INT         NOT NULL DEFAULT 0,
  ease          DOUBLE PRECISION NOT NULL DEFAULT 2.5,
  interval_days INT         NOT NULL DEFAULT 0,
  due           TIMESTAMPTZ NOT NULL,
  lapses        INT         NOT NULL DEFAULT 0,
  attempts      INT         NOT NULL DEFAULT 0,
  correct       INT         NOT NULL DEFAULT 0,
  created_at    TIMESTAMPTZ NOT NULL,
  position      INT         NOT NULL,
  PRIMARY KEY (learner_id, verb, tense, person)
);

CREATE TABLE IF NOT EXISTS review_attempts (
  id          TEXT        PRIMARY KEY,
  learner_id  TEXT        NOT NULL,
  verb        TEXT        NOT NULL,
  tense       TEXT        NOT NULL,
  person      TEXT        NOT NULL,
  correct     BOOLEAN     NOT NULL,
  error_kind  TEXT,
  quality     INT         NOT NULL,
  response_ms BIGINT      NOT NULL,
  at          TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS review_attempts_learner_idx
  ON review_attempts (learner_id, at);
`
}
