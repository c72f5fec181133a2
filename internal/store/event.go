package store

import (
	"database/sql"
	"time"
)

// EventKind names a recorded pointer action.
type EventKind string

const (
	EventClick       EventKind = "click"
	EventDoubleClick EventKind = "double_click"
	EventRightClick  EventKind = "right_click"
	EventDragStart   EventKind = "drag_start"
	EventDragEnd     EventKind = "drag_end"
	EventScroll      EventKind = "scroll"
)

// Event is one pointer action taken during a session.
type Event struct {
	ID        int64
	SessionID string
	Kind      EventKind
	X, Y      int
	Amount    int
	At        time.Time
}

// EventRepository stores session events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append inserts events for a session in a single transaction.
func (r *EventRepository) Append(sessionID string, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO session_events (session_id, kind, x, y, amount, at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(sessionID, string(e.Kind), e.X, e.Y, e.Amount, e.At); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListBySession returns a session's events in the order they happened.
func (r *EventRepository) ListBySession(sessionID string) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, kind, x, y, amount, at
		 FROM session_events
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.X, &e.Y, &e.Amount, &e.At); err != nil {
			return nil, err
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountBySession returns how many events of each kind a session recorded.
func (r *EventRepository) CountBySession(sessionID string) (map[EventKind]int, error) {
	rows, err := r.db.Query(
		`SELECT kind, COUNT(*) FROM session_events WHERE session_id = ? GROUP BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[EventKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[EventKind(kind)] = n
	}
	return counts, rows.Err()
}
