// Package tray provides the system tray controls for handpointer.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/handpointer/internal/config"
)

// Snapshot is the live session state shown in the menu.
type Snapshot struct {
	Status    string
	Clicks    int
	Scrolls   int
	CursorX   float64 // percent of screen width
	CursorY   float64 // percent of screen height
	Smoothing float64
}

// Tray is the system tray menu. Callbacks run on the tray's event goroutine
// and must not block.
type Tray struct {
	onToggle      func(tracking bool)
	onSensitivity func(dir config.Direction)
	onQuit        func()
	tracking      bool
	mu            sync.RWMutex

	menuToggle    *systray.MenuItem
	menuStatus    *systray.MenuItem
	menuCounters  *systray.MenuItem
	menuSmoothing *systray.MenuItem
}

// New creates a Tray in the tracking state.
func New() *Tray {
	return &Tray{
		tracking: true,
	}
}

// OnToggle sets the callback invoked when tracking is paused or resumed.
func (t *Tray) OnToggle(fn func(tracking bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSensitivity sets the callback invoked by the Faster and Smoother items.
func (t *Tray) OnSensitivity(fn func(dir config.Direction)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSensitivity = fn
}

// OnQuit sets the callback invoked when Quit is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the tray. It must be called from the main goroutine and blocks
// until Quit.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray from any goroutine.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Handpointer")
	systray.SetTooltip("Hand gesture pointer control")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.tracking), "Pause or resume hand tracking")
	systray.AddSeparator()

	t.menuStatus = systray.AddMenuItem(statusTitle(StatusStarting), "Current gesture")
	t.menuStatus.Disable()
	t.menuCounters = systray.AddMenuItem(countersTitle(Snapshot{}), "Session totals")
	t.menuCounters.Disable()
	systray.AddSeparator()

	t.menuSmoothing = systray.AddMenuItem(smoothingTitle(0), "Base smoothing factor")
	t.menuSmoothing.Disable()
	menuFaster := systray.AddMenuItem("Faster", "Less smoothing, more responsive")
	menuSmoother := systray.AddMenuItem("Smoother", "More smoothing, less jitter")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Handpointer")
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuFaster.ClickedCh:
				t.handleSensitivity(config.Faster)
			case <-menuSmoother.ClickedCh:
				t.handleSensitivity(config.Smoother)
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.tracking = !t.tracking
	tracking := t.tracking
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(tracking))
	}
	callback := t.onToggle
	t.mu.Unlock()

	if callback != nil {
		callback(tracking)
	}
}

func (t *Tray) handleSensitivity(dir config.Direction) {
	t.mu.RLock()
	callback := t.onSensitivity
	t.mu.RUnlock()

	if callback != nil {
		callback(dir)
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// Update refreshes the status, counters and smoothing items.
func (t *Tray) Update(s Snapshot) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		t.menuStatus.SetTitle(statusTitle(s.Status))
	}
	if t.menuCounters != nil {
		t.menuCounters.SetTitle(countersTitle(s))
	}
	if t.menuSmoothing != nil {
		t.menuSmoothing.SetTitle(smoothingTitle(s.Smoothing))
	}
}

// IsTracking returns whether tracking is enabled.
func (t *Tray) IsTracking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tracking
}

// StatusStarting is shown before the first frame is processed.
const StatusStarting = "Starting"

func toggleTitle(tracking bool) string {
	if tracking {
		return "● Tracking"
	}
	return "○ Paused"
}

func statusTitle(status string) string {
	if status == "" {
		status = StatusStarting
	}
	return "Gesture: " + status
}

func countersTitle(s Snapshot) string {
	return fmt.Sprintf("%d clicks, %d scrolls | cursor %.0f%%, %.0f%%", s.Clicks, s.Scrolls, s.CursorX, s.CursorY)
}

func smoothingTitle(v float64) string {
	if v <= 0 {
		return "Smoothing: -"
	}
	return fmt.Sprintf("Smoothing: %.2f", v)
}
