package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayusman/handpointer/internal/app"
	"github.com/ayusman/handpointer/internal/config"
	"github.com/ayusman/handpointer/internal/pointer"
	"github.com/ayusman/handpointer/internal/store"
	"github.com/ayusman/handpointer/internal/tray"
)

// trayRefresh is how often the tray menu is redrawn from the loop snapshot.
const trayRefresh = 250 * time.Millisecond

type options struct {
	configPath string
	camera     int
	dbPath     string
	noTray     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML settings file overlaying the defaults")
	flag.IntVar(&opts.camera, "camera", -1, "camera device index (default from settings)")
	flag.StringVar(&opts.dbPath, "db", "", "session history database (default ~/.handpointer/handpointer.db)")
	flag.BoolVar(&opts.noTray, "no-tray", false, "run without the system tray; stop with Ctrl+C")
	flag.Parse()

	fmt.Println("Handpointer - Hand Gesture Pointer Control")

	if err := run(opts); err != nil {
		log.Fatalf("Handpointer stopped: %v", err)
	}
}

func run(opts options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	st := openStore(opts.dbPath)
	if st != nil {
		defer st.Close()
	}

	driver := pointer.NewRobotgoDriver()
	screenW, screenH := driver.ScreenSize()

	a := app.New(app.Config{
		Settings:     settings,
		Store:        st,
		Driver:       driver,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Run(gctx)
	})

	fmt.Printf("Screen %dx%d, camera %d at %d FPS\n", screenW, screenH, settings.Camera.Device, settings.Camera.FPS)
	fmt.Println("Point with the index finger, pinch to click, fist to drag, open palm to scroll.")
	fmt.Println("Move the pointer into the top-left corner to stop.")

	if opts.noTray {
		fmt.Println("Press Ctrl+C to quit")
	} else {
		t := tray.New()
		t.OnToggle(func(tracking bool) {
			if tracking {
				a.Send(app.CommandResume)
			} else {
				a.Send(app.CommandPause)
			}
		})
		t.OnSensitivity(func(dir config.Direction) {
			a.Send(app.SensitivityCommand(dir))
		})
		t.OnQuit(cancel)

		g.Go(func() error {
			refreshTray(gctx, t, a, screenW, screenH)
			t.Quit()
			return nil
		})

		// systray needs the main goroutine; Run returns after Quit.
		t.Run()
		cancel()
	}

	err = g.Wait()
	snap := a.Snapshot()
	log.Printf("Session ended: %d clicks, %d scrolls", snap.Stats.Clicks, snap.Stats.Scrolls)
	if errors.Is(err, pointer.ErrFailSafe) {
		log.Println("Stopped by fail-safe")
		return nil
	}
	return err
}

func loadSettings(opts options) (config.Config, error) {
	settings := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return settings, err
		}
		settings = loaded
		log.Printf("Loaded settings from %s", opts.configPath)
	}
	if opts.camera >= 0 {
		settings.Camera.Device = opts.camera
	}
	return settings, nil
}

// openStore opens the session history database. History is optional, so a
// failure is logged and nil returned.
func openStore(dbPath string) *store.Store {
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Printf("Session history disabled: %v", err)
			return nil
		}
		dataDir := filepath.Join(homeDir, ".handpointer")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			log.Printf("Session history disabled: %v", err)
			return nil
		}
		dbPath = filepath.Join(dataDir, "handpointer.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Printf("Session history disabled: %v", err)
		return nil
	}
	log.Printf("Recording session history to %s", dbPath)
	return st
}

func refreshTray(ctx context.Context, t *tray.Tray, a *app.App, screenW, screenH int) {
	ticker := time.NewTicker(trayRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Update(trayView(a.Snapshot(), screenW, screenH))
		}
	}
}

func trayView(s app.Snapshot, screenW, screenH int) tray.Snapshot {
	x, y := s.CursorPercent(screenW, screenH)
	return tray.Snapshot{
		Status:    s.Stats.Status,
		Clicks:    s.Stats.Clicks,
		Scrolls:   s.Stats.Scrolls,
		CursorX:   x,
		CursorY:   y,
		Smoothing: s.Smoothing,
	}
}
