package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/predicate"
)

// Anonymous is the subject recorded for unauthenticated queries.
const Anonymous = "anonymous"

// DefaultLimit caps Recent when no positive limit is given.
const DefaultLimit = 20

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded eligibility query.
type Entry struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Correct   *string   `json:"correct,omitempty"`
	Wrong     *string   `json:"wrong,omitempty"`
	Invalid   *string   `json:"invalid,omitempty"`
	Matches   int       `json:"matches"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEntry builds an Entry for ev and its match count.
func NewEntry(subject string, ev predicate.Evidence, matches int) Entry {
	if subject == "" {
		subject = Anonymous
	}
	return Entry{
		Subject: subject,
		Correct: ev.Correct,
		Wrong:   ev.Wrong,
		Invalid: ev.Invalid,
		Matches: matches,
	}
}

// Store reads and writes the queries table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts e, filling ID and CreatedAt when unset, and returns the
// stored entry. Absent evidence is stored as NULL.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Subject == "" {
		e.Subject = Anonymous
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries(id, subject, correct, wrong, invalid, matches, created_at)
		VALUES(?,?,?,?,?,?,?)`,
		e.ID, e.Subject, nullable(e.Correct), nullable(e.Wrong), nullable(e.Invalid),
		e.Matches, e.CreatedAt.UTC().Format(timeLayout),
	)
	return e, err
}

// Recent returns subject's newest entries first, at most limit
// (DefaultLimit when limit <= 0).
func (s *Store) Recent(ctx context.Context, subject string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, correct, wrong, invalid, matches, created_at
		FROM queries
		WHERE subject=?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, subject, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e                       Entry
			correct, wrong, invalid sql.NullString
			created                 string
		)
		if err := rows.Scan(&e.ID, &e.Subject, &correct, &wrong, &invalid, &e.Matches, &created); err != nil {
			return nil, err
		}
		e.Correct, e.Wrong, e.Invalid = fromNull(correct), fromNull(wrong), fromNull(invalid)
		e.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
