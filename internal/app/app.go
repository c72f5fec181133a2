// Package app wires the camera, hand tracker and pointer session into the
// frame loop that runs for the lifetime of the program.
package app

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ayusman/handpointer/internal/capture"
	"github.com/ayusman/handpointer/internal/config"
	"github.com/ayusman/handpointer/internal/detector"
	"github.com/ayusman/handpointer/internal/interpret"
	"github.com/ayusman/handpointer/internal/pointer"
	"github.com/ayusman/handpointer/internal/store"
	"github.com/ayusman/handpointer/internal/timeutil"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no hand is tracked and the scene is static.
	IdleFPS = 5
	// IdleTimeout is how long the scene must stay static before the loop slows down.
	IdleTimeout = 2 * time.Second
	// CommandQueueSize bounds the number of pending tray commands.
	CommandQueueSize = 16
	// eventFlushSize is the number of buffered events written per batch.
	eventFlushSize = 64
)

var (
	// ErrAlreadyRunning is returned when Run is called on a running App.
	ErrAlreadyRunning = errors.New("app is already running")
	// ErrNoDriver is returned when Run is called without a pointer driver.
	ErrNoDriver = errors.New("no pointer driver configured")
)

// Config holds the dependencies and settings of an App. Camera and Detector
// are created from Settings when nil.
type Config struct {
	Settings     config.Config
	Store        *store.Store
	Camera       capture.Camera
	Detector     detector.Detector
	Driver       pointer.Driver
	ScreenWidth  int
	ScreenHeight int
	Clock        timeutil.Clock
}

// Snapshot is the state published by the frame loop after every frame.
type Snapshot struct {
	Stats     interpret.Stats
	Paused    bool
	Smoothing float64
	Running   bool
}

// CursorPercent returns the cursor position as a percentage of the screen.
func (s Snapshot) CursorPercent(screenW, screenH int) (float64, float64) {
	if screenW <= 1 || screenH <= 1 {
		return 0, 0
	}
	return s.Stats.Cursor.X / float64(screenW-1) * 100, s.Stats.Cursor.Y / float64(screenH-1) * 100
}

// App owns the frame loop. All session state lives on the loop goroutine;
// other goroutines talk to it through Send and read it through Snapshot.
type App struct {
	config   Config
	camera   capture.Camera
	gate     *capture.ActivityGate
	detector detector.Detector
	clock    timeutil.Clock
	commands chan Command

	mu       sync.RWMutex
	snapshot Snapshot
	running  bool

	// Loop-goroutine state.
	tracking     bool
	idle         bool
	lastActivity time.Time
	history      *store.Session
	events       []store.Event
	lastX, lastY int
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	if cfg.Clock == nil {
		cfg.Clock = timeutil.RealClock{}
	}

	a := &App{
		config:   cfg,
		camera:   cfg.Camera,
		detector: cfg.Detector,
		clock:    cfg.Clock,
		commands: make(chan Command, CommandQueueSize),
	}
	a.snapshot.Smoothing = cfg.Settings.Cursor.SmoothBase
	a.snapshot.Stats.Status = interpret.StatusNoHand

	if a.camera == nil {
		cam := cfg.Settings.Camera
		a.camera = capture.NewCamera(capture.Options{
			Device: cam.Device,
			Width:  cam.Width,
			Height: cam.Height,
			FPS:    cam.FPS,
		})
	}

	if cfg.Settings.Activity.Enabled {
		a.gate = capture.NewActivityGate(cfg.Settings.Activity.Threshold)
	}

	// Try MediaPipe first, fall back to mock detector
	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(cfg.Settings.Detector); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	return a
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}

// Snapshot returns the state published after the most recent frame.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Running reports whether the frame loop is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}

// Send queues a command for the frame loop without blocking. It reports
// false when the queue is full and the command was dropped.
func (a *App) Send(cmd Command) bool {
	select {
	case a.commands <- cmd:
		return true
	default:
		log.Printf("Command queue full, dropping %s", cmd)
		return false
	}
}

func (a *App) setRunning(running bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if running && a.running {
		return false
	}
	a.running = running
	a.snapshot.Running = running
	return true
}

// release closes the camera, activity gate and detector.
func (a *App) release() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if a.gate != nil {
		a.gate.Close()
	}
	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
}
