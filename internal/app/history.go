package app

import (
	"log"

	"github.com/ayusman/handpointer/internal/pointer"
	"github.com/ayusman/handpointer/internal/session"
	"github.com/ayusman/handpointer/internal/store"
)

// eventKind maps a pointer action to the event recorded for it. Moves are
// not recorded.
func eventKind(act pointer.Action) (store.EventKind, bool) {
	switch act.Kind {
	case pointer.ActionClick:
		if act.Button == pointer.ButtonRight {
			return store.EventRightClick, true
		}
		return store.EventClick, true
	case pointer.ActionDoubleClick:
		return store.EventDoubleClick, true
	case pointer.ActionDown:
		return store.EventDragStart, true
	case pointer.ActionUp:
		return store.EventDragEnd, true
	case pointer.ActionScroll:
		return store.EventScroll, true
	default:
		return "", false
	}
}

// record is the pointer observer. It runs on the loop goroutine.
func (a *App) record(act pointer.Action) {
	if act.Kind == pointer.ActionMove {
		a.lastX, a.lastY = act.X, act.Y
		return
	}
	if a.history == nil {
		return
	}

	kind, ok := eventKind(act)
	if !ok {
		return
	}
	a.events = append(a.events, store.Event{
		SessionID: a.history.ID,
		Kind:      kind,
		X:         a.lastX,
		Y:         a.lastY,
		Amount:    act.Amount,
		At:        a.clock.Now(),
	})
	if len(a.events) >= eventFlushSize {
		a.flush()
	}
}

// begin creates the history row for a new session. History is optional:
// a store failure is logged and the session runs unrecorded.
func (a *App) begin() {
	a.events = a.events[:0]
	a.history = nil
	if a.config.Store == nil {
		return
	}

	rec := &store.Session{StartedAt: a.clock.Now()}
	if err := a.config.Store.Sessions().Create(rec); err != nil {
		log.Printf("Failed to record session: %v", err)
		return
	}
	a.history = rec
}

// finish writes the remaining events and the session totals.
func (a *App) finish(summary session.Summary) {
	if a.history == nil {
		return
	}
	a.flush()

	rec := a.history
	rec.EndedAt = summary.EndedAt
	rec.Frames = summary.Frames
	rec.Clicks = summary.Stats.Clicks
	rec.DoubleClicks = summary.Stats.DoubleClicks
	rec.RightClicks = summary.Stats.RightClicks
	rec.Scrolls = summary.Stats.Scrolls
	rec.Drags = summary.Stats.Drags
	if err := a.config.Store.Sessions().Finish(rec); err != nil {
		log.Printf("Failed to finish session %s: %v", rec.ID, err)
	}
	a.history = nil
}

func (a *App) flush() {
	if len(a.events) == 0 {
		return
	}
	if err := a.config.Store.Events().Append(a.history.ID, a.events); err != nil {
		log.Printf("Failed to save %d session events: %v", len(a.events), err)
	}
	a.events = a.events[:0]
}
