package interpret

import (
	"time"

	"github.com/ayusman/handpointer/internal/cursor"
	"github.com/ayusman/handpointer/internal/gesture"
)

// PinchState is the hysteresis state of the thumb/index pinch.
type PinchState int

const (
	PinchOpen PinchState = iota
	PinchClosed
)

func (s PinchState) String() string {
	if s == PinchClosed {
		return "closed"
	}
	return "open"
}

// DragState tracks whether the left button is held for a fist drag.
type DragState int

const (
	DragIdle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// ScrollState tracks open-palm scrolling.
type ScrollState int

const (
	// ScrollIdle means no open palm is being tracked.
	ScrollIdle ScrollState = iota
	// ScrollArming means an open palm was seen but has not been held for
	// enough frames to emit scroll steps.
	ScrollArming
	// Scrolling means palm motion is being converted into scroll steps.
	Scrolling
)

func (s ScrollState) String() string {
	switch s {
	case ScrollArming:
		return "arming"
	case Scrolling:
		return "scrolling"
	default:
		return "idle"
	}
}

// Status texts shown to the user.
const (
	StatusNoHand      = "No hand"
	StatusIdle        = "Idle"
	StatusPointing    = "Pointing"
	StatusPinch       = "Pinch"
	StatusPeace       = "Peace"
	StatusClick       = "Click"
	StatusDoubleClick = "Double click"
	StatusRightClick  = "Right click"
	StatusDragging    = "Dragging"
	StatusReleased    = "Released"
	StatusScrollReady = "Scroll Ready"
	StatusScrolling   = "Scrolling"
)

// State is the interaction memory carried between frames.
type State struct {
	Pinch      PinchState
	PinchStart time.Time

	LastClick       time.Time
	LastRightClick  time.Time
	LastSingleClick time.Time // zero when no single click awaits a double

	Drag DragState

	Scroll       ScrollState
	ScrollOrigin float64
	ScrollLast   float64
	ScrollFrames int
}

// Stats is a read-only snapshot of a session's counters and status.
type Stats struct {
	Clicks       int
	Scrolls      int
	RightClicks  int
	DoubleClicks int
	Drags        int

	Status   string
	Gesture  gesture.Label
	Cursor   cursor.Point
	Dragging bool
}
