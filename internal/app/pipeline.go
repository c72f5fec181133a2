package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handpointer/internal/detector"
	"github.com/ayusman/handpointer/internal/pointer"
	"github.com/ayusman/handpointer/internal/session"
)

// Run opens the camera and processes frames until ctx is cancelled or the
// pointer fail-safe trips. The session is closed and persisted before Run
// returns, so a held drag is always released. The camera, activity gate and
// detector are closed on return; an App runs once.
//
// Per frame:
//  1. Apply queued commands
//  2. Read a frame (skipped while paused)
//  3. While no hand is tracked, skip detection if the scene is static
//  4. Detect the hand and step the session
//  5. Publish a snapshot
//
// After IdleTimeout without activity the loop drops to IdleFPS until the
// scene changes again.
func (a *App) Run(ctx context.Context) error {
	if a.config.Driver == nil {
		return ErrNoDriver
	}
	if a.config.ScreenWidth <= 0 || a.config.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", a.config.ScreenWidth, a.config.ScreenHeight)
	}
	if !a.setRunning(true) {
		return ErrAlreadyRunning
	}
	defer a.setRunning(false)

	defer a.release()
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	driver := pointer.Observe(a.config.Driver, a.record)
	sess := session.New(a.config.Settings, a.config.ScreenWidth, a.config.ScreenHeight, driver, a.clock)
	a.begin()
	a.lastActivity = a.clock.Now()
	log.Printf("Pointer pipeline started (%dx%d screen)", a.config.ScreenWidth, a.config.ScreenHeight)

	activeInterval := frameInterval(a.camera.FPS())
	ticker := time.NewTicker(activeInterval)
	defer ticker.Stop()

	var runErr error
	idle := false

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if err := a.tick(sess); err != nil {
				if errors.Is(err, pointer.ErrFailSafe) {
					log.Printf("Fail-safe triggered, stopping: %v", err)
					runErr = err
					break loop
				}
				log.Printf("Pointer action failed: %v", err)
			}

			if a.idle != idle {
				idle = a.idle
				if idle {
					ticker.Reset(frameInterval(IdleFPS))
					log.Println("Switched to idle mode")
				} else {
					ticker.Reset(activeInterval)
					log.Println("Switched to active mode")
				}
			}
		}
	}

	summary, err := sess.Close()
	if err != nil {
		log.Printf("Error closing session: %v", err)
	}
	a.publish(sess)
	a.finish(summary)

	log.Printf("Pointer pipeline stopped after %s: %d clicks, %d scrolls",
		summary.Duration().Round(time.Second), summary.Stats.Clicks, summary.Stats.Scrolls)
	return runErr
}

// tick runs one frame.
func (a *App) tick(sess *session.Session) error {
	err := a.drainCommands(sess)

	if !sess.Paused() {
		if stepErr := sess.Step(a.nextHand()); stepErr != nil {
			err = errors.Join(err, stepErr)
		}
	}

	a.publish(sess)
	return err
}

// nextHand reads one frame and returns the tracked hand, or nil when there
// is none. Camera and detector errors count as a frame without a hand.
func (a *App) nextHand() *detector.HandLandmarks {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		a.setTracking(false)
		return nil
	}
	defer frame.Close()

	if !a.tracking && !a.sceneActive(frame) {
		return nil
	}

	hand, err := a.Detector().Detect(frame)
	if err != nil {
		log.Printf("Error detecting hand: %v", err)
		a.setTracking(false)
		return nil
	}

	a.setTracking(hand != nil)
	if a.tracking {
		a.markActive()
	}
	return hand
}

// setTracking records whether a hand is tracked. Losing the hand drops the
// gate baseline, which was last taken before the hand appeared.
func (a *App) setTracking(tracking bool) {
	if a.tracking && !tracking {
		a.resetGate()
	}
	a.tracking = tracking
}

func (a *App) resetGate() {
	if a.gate != nil {
		a.gate.Reset()
	}
}

// sceneActive consults the activity gate. Without a gate every frame is active.
func (a *App) sceneActive(frame *gocv.Mat) bool {
	if a.gate == nil {
		return true
	}

	if active, _ := a.gate.Active(frame); active {
		a.markActive()
		return true
	}
	if !a.idle && a.clock.Since(a.lastActivity) > IdleTimeout {
		a.idle = true
	}
	return false
}

func (a *App) markActive() {
	a.lastActivity = a.clock.Now()
	a.idle = false
}

func (a *App) publish(sess *session.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshot.Stats = sess.Stats()
	a.snapshot.Paused = sess.Paused()
	a.snapshot.Smoothing = sess.Smoothing()
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
