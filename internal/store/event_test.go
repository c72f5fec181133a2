package store

import (
	"testing"
	"time"
)

func TestEventRepository_AppendAndList(t *testing.T) {
	s := newTestStore(t)

	sess := &Session{}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{Kind: EventClick, X: 100, Y: 200, At: at},
		{Kind: EventDragStart, X: 110, Y: 210, At: at.Add(time.Second)},
		{Kind: EventDragEnd, X: 400, Y: 300, At: at.Add(2 * time.Second)},
		{Kind: EventScroll, X: 400, Y: 300, Amount: -7, At: at.Add(3 * time.Second)},
		{Kind: EventScroll, X: 400, Y: 300, Amount: -5, At: at.Add(3100 * time.Millisecond)},
	}
	if err := s.Events().Append(sess.ID, events); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := s.Events().ListBySession(sess.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("ListBySession() returned %d events, want %d", len(got), len(events))
	}
	for i, e := range got {
		want := events[i]
		if e.Kind != want.Kind || e.X != want.X || e.Y != want.Y || e.Amount != want.Amount {
			t.Errorf("event %d = %+v, want %+v", i, e, want)
		}
		if !e.At.Equal(want.At) {
			t.Errorf("event %d At = %v, want %v", i, e.At, want.At)
		}
		if e.SessionID != sess.ID {
			t.Errorf("event %d SessionID = %q", i, e.SessionID)
		}
	}

	counts, err := s.Events().CountBySession(sess.ID)
	if err != nil {
		t.Fatalf("CountBySession() error = %v", err)
	}
	if counts[EventScroll] != 2 || counts[EventClick] != 1 || counts[EventRightClick] != 0 {
		t.Errorf("CountBySession() = %v", counts)
	}
}

func TestEventRepository_AppendEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.Events().Append("no-such-session", nil); err != nil {
		t.Errorf("Append(nil) error = %v, want nil", err)
	}
}

func TestEventRepository_AppendIsAtomic(t *testing.T) {
	s := newTestStore(t)

	sess := &Session{}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	events := []Event{
		{Kind: EventClick, At: time.Now()},
		{Kind: EventKind("wave"), At: time.Now()},
	}
	if err := s.Events().Append(sess.ID, events); err == nil {
		t.Fatal("expected error for unknown event kind")
	}

	got, err := s.Events().ListBySession(sess.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("partial batch was committed: %d events", len(got))
	}
}

func TestEventRepository_UnknownSession(t *testing.T) {
	s := newTestStore(t)

	err := s.Events().Append("missing", []Event{{Kind: EventClick, At: time.Now()}})
	if err == nil {
		t.Error("expected foreign key error for unknown session")
	}
}
