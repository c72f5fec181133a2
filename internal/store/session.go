package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is the stored record of one pointer session.
type Session struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time // zero while the session is running
	Frames       int
	Clicks       int
	DoubleClicks int
	RightClicks  int
	Scrolls      int
	Drags        int
}

// Finished reports whether the session has ended.
func (s *Session) Finished() bool {
	return !s.EndedAt.IsZero()
}

// SessionRepository stores sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

const sessionColumns = `id, started_at, ended_at, frames, clicks, double_clicks, right_clicks, scrolls, drags`

// Create inserts a running session. An empty ID is replaced by a new UUID.
func (r *SessionRepository) Create(s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		s.ID, s.StartedAt,
	)
	return err
}

// Finish records the end time and totals of a session.
func (r *SessionRepository) Finish(s *Session) error {
	if s.EndedAt.IsZero() {
		s.EndedAt = time.Now()
	}

	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, frames = ?, clicks = ?, double_clicks = ?,
		 right_clicks = ?, scrolls = ?, drags = ?
		 WHERE id = ?`,
		s.EndedAt, s.Frames, s.Clicks, s.DoubleClicks, s.RightClicks, s.Scrolls, s.Drags, s.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	s, err := scanSession(r.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// List returns the most recent sessions first. limit <= 0 returns all.
func (r *SessionRepository) List(limit int) ([]*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Delete removes a session and its events.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	s := &Session{}
	var ended sql.NullTime

	err := row.Scan(&s.ID, &s.StartedAt, &ended, &s.Frames, &s.Clicks, &s.DoubleClicks,
		&s.RightClicks, &s.Scrolls, &s.Drags)
	if err != nil {
		return nil, err
	}
	if ended.Valid {
		s.EndedAt = ended.Time
	}
	return s, nil
}
