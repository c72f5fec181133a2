// Package pointer drives the operating system's mouse pointer.
package pointer

import (
	"errors"
	"fmt"
)

// ErrFailSafe is returned by a Driver when the user has parked the physical
// pointer in the reserved fail-safe corner. Callers must stop issuing actions.
var ErrFailSafe = errors.New("pointer fail-safe triggered")

// Button identifies a mouse button.
type Button int

const (
	// ButtonLeft is the primary button.
	ButtonLeft Button = iota
	// ButtonRight is the secondary (context menu) button.
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Driver is the pointer surface the interpreter talks to. Every method may
// return ErrFailSafe, possibly wrapped.
type Driver interface {
	// Move places the pointer at absolute screen coordinates.
	Move(x, y int) error
	// Down presses and holds a button.
	Down(b Button) error
	// Up releases a held button.
	Up(b Button) error
	// Click presses and releases a button.
	Click(b Button) error
	// DoubleClick issues two clicks in quick succession.
	DoubleClick(b Button) error
	// Scroll scrolls vertically by amount wheel steps; positive is up.
	Scroll(amount int) error
}

// ActionKind names a pointer action.
type ActionKind string

const (
	ActionMove        ActionKind = "move"
	ActionDown        ActionKind = "down"
	ActionUp          ActionKind = "up"
	ActionClick       ActionKind = "click"
	ActionDoubleClick ActionKind = "double_click"
	ActionScroll      ActionKind = "scroll"
)

// Action is one call made against a Driver.
type Action struct {
	Kind   ActionKind
	Button Button
	X, Y   int
	Amount int
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		return fmt.Sprintf("move(%d,%d)", a.X, a.Y)
	case ActionScroll:
		return fmt.Sprintf("scroll(%d)", a.Amount)
	default:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Button)
	}
}
