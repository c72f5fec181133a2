// Package session runs one pointer-control session: it feeds frames to the
// interpreter, handles hand loss and pause, and applies live sensitivity
// changes.
package session

import (
	"fmt"
	"log"
	"time"

	"github.com/ayusman/handpointer/internal/config"
	"github.com/ayusman/handpointer/internal/detector"
	"github.com/ayusman/handpointer/internal/interpret"
	"github.com/ayusman/handpointer/internal/pointer"
	"github.com/ayusman/handpointer/internal/timeutil"
)

// StatusPaused is reported while the session ignores frames.
const StatusPaused = "Paused"

// Summary is the outcome of a finished session.
type Summary struct {
	StartedAt time.Time
	EndedAt   time.Time
	Frames    int
	Stats     interpret.Stats
}

// Duration returns how long the session ran.
func (s Summary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Session owns an Interpreter and the frame-level bookkeeping around it.
// It is driven from a single goroutine.
type Session struct {
	cfg    config.Config
	clock  timeutil.Clock
	interp *interpret.Interpreter

	startedAt time.Time
	frames    int
	missed    int
	paused    bool
	closed    bool
}

// New starts a session for a screen of the given size.
func New(cfg config.Config, screenW, screenH int, driver pointer.Driver, clock timeutil.Clock) *Session {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Session{
		cfg:       cfg,
		clock:     clock,
		interp:    interpret.New(cfg, screenW, screenH, driver),
		startedAt: clock.Now(),
	}
}

// Step processes one frame. h is nil when no hand was detected.
func (s *Session) Step(h *detector.HandLandmarks) error {
	if s.paused || s.closed {
		return nil
	}
	s.frames++

	if h == nil {
		s.missed++
		if s.missed >= s.cfg.Session.HandLostFrames {
			return s.interp.HandLost()
		}
		return nil
	}

	s.missed = 0
	return s.interp.Process(h, s.clock.Now())
}

// Pause stops frame processing and releases any held button.
func (s *Session) Pause() error {
	if s.paused {
		return nil
	}
	s.paused = true
	s.missed = 0
	log.Println("Session paused")
	if err := s.interp.HandLost(); err != nil {
		return fmt.Errorf("pause session: %w", err)
	}
	return nil
}

// Resume restarts frame processing.
func (s *Session) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	log.Println("Session resumed")
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() error {
	if s.paused {
		s.Resume()
		return nil
	}
	return s.Pause()
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// AdjustSensitivity steps the base smoothing factor and returns the new value.
func (s *Session) AdjustSensitivity(dir config.Direction) float64 {
	v := s.cfg.AdjustSensitivity(dir)
	s.interp.SetSmoothing(v)
	log.Printf("Sensitivity %s: smoothing %.2f", dir, v)
	return v
}

// Smoothing returns the current base smoothing factor.
func (s *Session) Smoothing() float64 {
	return s.cfg.Cursor.SmoothBase
}

// Stats returns the live counters and status.
func (s *Session) Stats() interpret.Stats {
	st := s.interp.Stats()
	if s.paused {
		st.Status = StatusPaused
	}
	return st
}

// Close releases any held button and returns the session summary. Further
// frames are ignored.
func (s *Session) Close() (Summary, error) {
	var err error
	if !s.closed {
		s.closed = true
		if herr := s.interp.HandLost(); herr != nil {
			err = fmt.Errorf("close session: %w", herr)
		}
	}

	return Summary{
		StartedAt: s.startedAt,
		EndedAt:   s.clock.Now(),
		Frames:    s.frames,
		Stats:     s.interp.Stats(),
	}, err
}
