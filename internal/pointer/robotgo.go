package pointer

import (
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"
)

// RobotgoDriver drives the real OS pointer through robotgo.
//
// Before every action except a button release it checks the physical
// pointer position: if the user has pushed it into the top-left corner the
// call is refused with ErrFailSafe. Moves never target the corner
// themselves, so only the user's own mouse can trip it.
type RobotgoDriver struct {
	mu sync.Mutex

	// FailSafe enables the corner check. It defaults to on.
	FailSafe bool
	// Corner is the size in pixels of the fail-safe region at (0, 0).
	Corner int
}

// NewRobotgoDriver returns a driver with the fail-safe enabled.
func NewRobotgoDriver() *RobotgoDriver {
	return &RobotgoDriver{FailSafe: true}
}

// ScreenSize returns the main display size in pixels.
func (d *RobotgoDriver) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

func (d *RobotgoDriver) check(op string) error {
	if !d.FailSafe {
		return nil
	}
	x, y := robotgo.Location()
	if inCorner(x, y, d.Corner) {
		return fmt.Errorf("%s at (%d,%d): %w", op, x, y, ErrFailSafe)
	}
	return nil
}

func (d *RobotgoDriver) Move(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.check("move"); err != nil {
		return err
	}
	if d.FailSafe {
		x, y = outsideCorner(x, y, d.Corner)
	}
	robotgo.Move(x, y)
	return nil
}

func (d *RobotgoDriver) Down(b Button) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.check("button down"); err != nil {
		return err
	}
	if err := robotgo.Toggle(b.String()); err != nil {
		return fmt.Errorf("button down: %w", err)
	}
	return nil
}

func (d *RobotgoDriver) Up(b Button) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// No corner check: a release must always go through.
	if err := robotgo.Toggle(b.String(), "up"); err != nil {
		return fmt.Errorf("button up: %w", err)
	}
	return nil
}

func (d *RobotgoDriver) Click(b Button) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.check("click"); err != nil {
		return err
	}
	robotgo.Click(b.String())
	return nil
}

func (d *RobotgoDriver) DoubleClick(b Button) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.check("double click"); err != nil {
		return err
	}
	robotgo.Click(b.String(), true)
	return nil
}

func (d *RobotgoDriver) Scroll(amount int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.check("scroll"); err != nil {
		return err
	}
	robotgo.Scroll(0, amount)
	return nil
}

func inCorner(x, y, size int) bool {
	return x <= size && y <= size
}

// outsideCorner moves a target inside the fail-safe region just below it.
func outsideCorner(x, y, size int) (int, int) {
	if inCorner(x, y, size) {
		y = size + 1
	}
	return x, y
}
