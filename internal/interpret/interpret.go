// Package interpret turns per-frame hand poses into pointer actions.
//
// Each frame runs a fixed sequence: move the cursor, update the pinch, then
// at most one of click, drag or scroll. The Interpreter owns all state for a
// single session and is not safe for concurrent use.
package interpret

import (
	"fmt"
	"math"
	"time"

	"github.com/ayusman/handpointer/internal/config"
	"github.com/ayusman/handpointer/internal/cursor"
	"github.com/ayusman/handpointer/internal/detector"
	"github.com/ayusman/handpointer/internal/fingers"
	"github.com/ayusman/handpointer/internal/gesture"
	"github.com/ayusman/handpointer/internal/pointer"
)

// Interpreter is the gesture state machine and action dispatcher.
type Interpreter struct {
	driver pointer.Driver
	mapper cursor.Mapper
	params cursor.Params
	taps   config.GestureConfig
	scroll config.ScrollConfig
	pinch  pinchTracker
	filter *gesture.Filter

	cursor cursor.State
	state  State
	stats  Stats
}

// New creates an Interpreter for a screen of the given size.
func New(cfg config.Config, screenW, screenH int, driver pointer.Driver) *Interpreter {
	in := &Interpreter{
		driver: driver,
		mapper: cursor.Mapper{Width: screenW, Height: screenH, Margin: cfg.Cursor.Margin},
		params: cursor.Params{
			Base:              cfg.Cursor.SmoothBase,
			Fast:              cfg.Cursor.SmoothFast,
			VelocityThreshold: cfg.Cursor.VelocityThreshold,
			DeadZone:          cfg.Cursor.DeadZone,
		},
		taps:   cfg.Gesture,
		scroll: cfg.Scroll,
		pinch:  pinchTracker{closeAt: cfg.Gesture.PinchClose, openAt: cfg.Gesture.PinchOpen},
		filter: gesture.NewFilter(gesture.FilterConfig{
			ConfirmFrames:     cfg.Gesture.ConfirmFrames,
			FistConfirmFrames: cfg.Gesture.FistConfirmFrames,
			HistorySize:       cfg.Gesture.HistorySize,
		}),
		cursor: cursor.NewState(screenW, screenH),
	}
	in.stats.Status = StatusNoHand
	in.stats.Gesture = gesture.LabelIdle
	in.stats.Cursor = in.cursor.Smoothed
	return in
}

// SetSmoothing changes the base smoothing factor for subsequent frames.
func (in *Interpreter) SetSmoothing(base float64) {
	in.params.Base = base
}

// Process interprets one frame containing a hand. now is the frame time.
// Errors come only from the pointer driver and are returned unhandled.
func (in *Interpreter) Process(h *detector.HandLandmarks, now time.Time) error {
	pose := fingers.Analyze(h)

	target := in.mapper.Map(pose.IndexTip.X, pose.IndexTip.Y)
	in.cursor = in.cursor.Step(target, in.params)
	in.stats.Cursor = in.cursor.Smoothed
	if err := in.driver.Move(in.cursor.Smoothed.Int()); err != nil {
		return fmt.Errorf("move pointer: %w", err)
	}

	released, hold := in.pinch.update(&in.state, pose.PinchDistance, now)

	label := in.classify(pose)
	accepted := in.filter.Observe(label)
	in.stats.Gesture = in.filter.Confirmed()

	if released && hold < in.taps.MaxTapHold && now.Sub(in.state.LastClick) > in.taps.ClickCooldown {
		done, err := in.tap(pose, now)
		if done || err != nil {
			return err
		}
	}

	if pose.AllCurled && accepted && label == gesture.LabelFist {
		if in.state.Drag != Dragging {
			if err := in.driver.Down(pointer.ButtonLeft); err != nil {
				return fmt.Errorf("start drag: %w", err)
			}
			in.state.Drag = Dragging
			in.stats.Drags++
		}
		in.stats.Status = StatusDragging
		return nil
	}
	if !pose.AllCurled && in.state.Drag == Dragging {
		return in.endDrag()
	}

	if pose.OpenPalm {
		return in.scrollStep(pose.PalmY)
	}
	in.resetScroll()

	in.stats.Status = in.displayStatus(pose)
	return nil
}

// tap dispatches a completed short pinch. It reports done when the frame's
// primary action has been taken.
func (in *Interpreter) tap(pose fingers.Pose, now time.Time) (bool, error) {
	in.state.LastClick = now

	if in.state.Drag == Dragging {
		return true, in.endDrag()
	}

	if pose.Peace {
		if now.Sub(in.state.LastRightClick) <= in.taps.ClickCooldown {
			return false, nil
		}
		if err := in.driver.Click(pointer.ButtonRight); err != nil {
			return true, fmt.Errorf("right click: %w", err)
		}
		in.state.LastRightClick = now
		in.stats.RightClicks++
		in.stats.Clicks++
		in.stats.Status = StatusRightClick
		return true, nil
	}

	if !in.state.LastSingleClick.IsZero() && now.Sub(in.state.LastSingleClick) < in.taps.DoubleClickWindow {
		if err := in.driver.DoubleClick(pointer.ButtonLeft); err != nil {
			return true, fmt.Errorf("double click: %w", err)
		}
		in.state.LastSingleClick = time.Time{}
		in.stats.DoubleClicks++
		in.stats.Status = StatusDoubleClick
	} else {
		if err := in.driver.Click(pointer.ButtonLeft); err != nil {
			return true, fmt.Errorf("click: %w", err)
		}
		in.state.LastSingleClick = now
		in.stats.Status = StatusClick
	}
	in.stats.Clicks++
	return true, nil
}

// endDrag releases the left button. The drag stays active if the release
// fails so the next attempt retries it.
func (in *Interpreter) endDrag() error {
	if err := in.driver.Up(pointer.ButtonLeft); err != nil {
		return fmt.Errorf("end drag: %w", err)
	}
	in.state.Drag = DragIdle
	in.stats.Status = StatusReleased
	return nil
}

func (in *Interpreter) scrollStep(palmY float64) error {
	s := &in.state
	if s.Scroll == ScrollIdle {
		s.Scroll = ScrollArming
		s.ScrollOrigin = palmY
		s.ScrollLast = palmY
		s.ScrollFrames = 0
		in.stats.Status = StatusScrollReady
		return nil
	}

	s.ScrollFrames++
	if s.ScrollFrames < in.scroll.ConfirmFrames {
		in.stats.Status = StatusScrollReady
		return nil
	}

	s.Scroll = Scrolling
	in.stats.Status = StatusScrolling

	delta := (palmY - s.ScrollLast) * in.scroll.Sensitivity
	s.ScrollLast = palmY
	if math.Abs(delta) <= in.scroll.MinDelta {
		return nil
	}

	// Hand moving down the frame scrolls the page down.
	amount := int(-delta * in.scroll.Gain)
	amount = max(-in.scroll.MaxStep, min(in.scroll.MaxStep, amount))
	if amount == 0 {
		return nil
	}
	if err := in.driver.Scroll(amount); err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	in.stats.Scrolls++
	return nil
}

func (in *Interpreter) resetScroll() {
	in.state.Scroll = ScrollIdle
	in.state.ScrollOrigin = 0
	in.state.ScrollLast = 0
	in.state.ScrollFrames = 0
}

// classify returns the raw label for a frame. The pinch state must already
// reflect this frame.
func (in *Interpreter) classify(pose fingers.Pose) gesture.Label {
	switch {
	case pose.AllCurled:
		return gesture.LabelFist
	case pose.OpenPalm:
		return gesture.LabelScroll
	case pose.Pointing:
		return gesture.LabelPoint
	case in.state.Pinch == PinchClosed:
		return gesture.LabelPinch
	case pose.Peace:
		return gesture.LabelPeace
	default:
		return gesture.LabelIdle
	}
}

func (in *Interpreter) displayStatus(pose fingers.Pose) string {
	switch {
	case pose.Pointing:
		return StatusPointing
	case in.state.Pinch == PinchClosed:
		return StatusPinch
	case pose.Peace:
		return StatusPeace
	default:
		return StatusIdle
	}
}

// HandLost releases a held drag and clears all transient gesture state.
// Calling it again without an intervening drag is a no-op for the driver.
func (in *Interpreter) HandLost() error {
	var err error
	if in.state.Drag == Dragging {
		err = in.endDrag()
	}

	in.state.Pinch = PinchOpen
	in.state.PinchStart = time.Time{}
	in.resetScroll()
	in.filter.Reset()

	in.stats.Status = StatusNoHand
	in.stats.Gesture = in.filter.Confirmed()
	return err
}

// Dragging reports whether the left button is held by a drag.
func (in *Interpreter) Dragging() bool {
	return in.state.Drag == Dragging
}

// State returns a copy of the interaction state.
func (in *Interpreter) State() State {
	return in.state
}

// Stats returns a snapshot of counters and status.
func (in *Interpreter) Stats() Stats {
	s := in.stats
	s.Dragging = in.state.Drag == Dragging
	return s
}
