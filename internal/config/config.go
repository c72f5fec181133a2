// Package config holds the tunable parameters of the pointer interpreter.
//
// Defaults are compiled in. An optional YAML file overlays them; fields the
// file omits keep their defaults. Settings are never written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/handpointer/internal/detector"
)

// Config is the complete runtime configuration.
type Config struct {
	Camera   CameraConfig    `yaml:"camera"`
	Detector detector.Config `yaml:"detector"`
	Cursor   CursorConfig    `yaml:"cursor"`
	Gesture  GestureConfig   `yaml:"gesture"`
	Scroll   ScrollConfig    `yaml:"scroll"`
	Session  SessionConfig   `yaml:"session"`
	Activity ActivityConfig  `yaml:"activity"`
}

// CameraConfig selects and sizes the capture device.
type CameraConfig struct {
	Device int `yaml:"device"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// CursorConfig tunes fingertip mapping and smoothing.
type CursorConfig struct {
	SmoothBase        float64 `yaml:"smooth_base"`
	SmoothFast        float64 `yaml:"smooth_fast"`
	VelocityThreshold float64 `yaml:"velocity_threshold"` // px per frame
	DeadZone          float64 `yaml:"dead_zone"`          // px
	Margin            float64 `yaml:"margin"`             // fraction of the frame
}

// GestureConfig tunes pinch detection, click timing and gesture confirmation.
type GestureConfig struct {
	PinchClose        float64       `yaml:"pinch_close"`
	PinchOpen         float64       `yaml:"pinch_open"`
	ClickCooldown     time.Duration `yaml:"click_cooldown"`
	DoubleClickWindow time.Duration `yaml:"double_click_window"`
	MaxTapHold        time.Duration `yaml:"max_tap_hold"`
	ConfirmFrames     int           `yaml:"confirm_frames"`
	FistConfirmFrames int           `yaml:"fist_confirm_frames"`
	HistorySize       int           `yaml:"history_size"`
}

// ScrollConfig tunes open-palm scrolling.
type ScrollConfig struct {
	Sensitivity   float64 `yaml:"sensitivity"`
	Gain          float64 `yaml:"gain"`
	MinDelta      float64 `yaml:"min_delta"`
	MaxStep       int     `yaml:"max_step"`
	ConfirmFrames int     `yaml:"confirm_frames"`
}

// SessionConfig tunes hand-loss handling and live sensitivity changes.
type SessionConfig struct {
	HandLostFrames  int     `yaml:"hand_lost_frames"`
	SensitivityStep float64 `yaml:"sensitivity_step"`
	SmoothBaseMin   float64 `yaml:"smooth_base_min"`
	SmoothBaseMax   float64 `yaml:"smooth_base_max"`
}

// ActivityConfig tunes the scene-activity gate that skips detection while
// no hand is tracked and nothing in view moves.
type ActivityConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"` // percent of changed pixels
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			Device: 0,
			Width:  640,
			Height: 480,
			FPS:    30,
		},
		Detector: detector.DefaultConfig(),
		Cursor: CursorConfig{
			SmoothBase:        0.25,
			SmoothFast:        0.55,
			VelocityThreshold: 40,
			DeadZone:          3,
			Margin:            0.10,
		},
		Gesture: GestureConfig{
			PinchClose:        0.045,
			PinchOpen:         0.065,
			ClickCooldown:     350 * time.Millisecond,
			DoubleClickWindow: 500 * time.Millisecond,
			MaxTapHold:        450 * time.Millisecond,
			ConfirmFrames:     2,
			FistConfirmFrames: 3,
			HistorySize:       8,
		},
		Scroll: ScrollConfig{
			Sensitivity:   50,
			Gain:          5,
			MinDelta:      0.2,
			MaxStep:       15,
			ConfirmFrames: 3,
		},
		Session: SessionConfig{
			HandLostFrames:  3,
			SensitivityStep: 0.05,
			SmoothBaseMin:   0.1,
			SmoothBaseMax:   0.6,
		},
		Activity: ActivityConfig{
			Enabled:   true,
			Threshold: 0.5,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every parameter is within its usable range.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Camera.Width > 0 && c.Camera.Height > 0, "camera size must be positive, got %dx%d", c.Camera.Width, c.Camera.Height)
	check(c.Camera.FPS > 0, "camera fps must be positive, got %d", c.Camera.FPS)
	check(c.Detector.MaxHands >= 1, "detector max_hands must be at least 1, got %d", c.Detector.MaxHands)
	check(inUnit(c.Detector.MinConfidence), "detector min_confidence must be in [0,1], got %v", c.Detector.MinConfidence)
	check(inUnit(c.Detector.MinTrackingConf), "detector min_tracking_confidence must be in [0,1], got %v", c.Detector.MinTrackingConf)

	check(c.Session.SmoothBaseMin > 0 && c.Session.SmoothBaseMin <= c.Session.SmoothBaseMax && c.Session.SmoothBaseMax <= 1,
		"smooth base range must satisfy 0 < min <= max <= 1, got [%v,%v]", c.Session.SmoothBaseMin, c.Session.SmoothBaseMax)
	check(c.Cursor.SmoothBase >= c.Session.SmoothBaseMin && c.Cursor.SmoothBase <= c.Session.SmoothBaseMax,
		"cursor smooth_base %v outside [%v,%v]", c.Cursor.SmoothBase, c.Session.SmoothBaseMin, c.Session.SmoothBaseMax)
	check(c.Cursor.SmoothFast > 0 && c.Cursor.SmoothFast <= 1, "cursor smooth_fast must be in (0,1], got %v", c.Cursor.SmoothFast)
	check(c.Cursor.VelocityThreshold >= 0, "cursor velocity_threshold must not be negative, got %v", c.Cursor.VelocityThreshold)
	check(c.Cursor.DeadZone >= 0, "cursor dead_zone must not be negative, got %v", c.Cursor.DeadZone)
	check(c.Cursor.Margin >= 0 && c.Cursor.Margin < 0.5, "cursor margin must be in [0,0.5), got %v", c.Cursor.Margin)

	check(c.Gesture.PinchClose > 0 && c.Gesture.PinchClose < c.Gesture.PinchOpen,
		"pinch thresholds must satisfy 0 < close < open, got close=%v open=%v", c.Gesture.PinchClose, c.Gesture.PinchOpen)
	check(c.Gesture.ClickCooldown >= 0, "click_cooldown must not be negative, got %v", c.Gesture.ClickCooldown)
	check(c.Gesture.DoubleClickWindow > c.Gesture.ClickCooldown,
		"double_click_window %v must exceed click_cooldown %v", c.Gesture.DoubleClickWindow, c.Gesture.ClickCooldown)
	check(c.Gesture.MaxTapHold > 0, "max_tap_hold must be positive, got %v", c.Gesture.MaxTapHold)
	check(c.Gesture.ConfirmFrames >= 1, "confirm_frames must be at least 1, got %d", c.Gesture.ConfirmFrames)
	check(c.Gesture.FistConfirmFrames >= 1, "fist_confirm_frames must be at least 1, got %d", c.Gesture.FistConfirmFrames)
	check(c.Gesture.HistorySize >= max(c.Gesture.ConfirmFrames, c.Gesture.FistConfirmFrames),
		"history_size %d smaller than confirm frames", c.Gesture.HistorySize)

	check(c.Scroll.Sensitivity > 0, "scroll sensitivity must be positive, got %v", c.Scroll.Sensitivity)
	check(c.Scroll.Gain > 0, "scroll gain must be positive, got %v", c.Scroll.Gain)
	check(c.Scroll.MinDelta >= 0, "scroll min_delta must not be negative, got %v", c.Scroll.MinDelta)
	check(c.Scroll.MaxStep >= 1, "scroll max_step must be at least 1, got %d", c.Scroll.MaxStep)
	check(c.Scroll.ConfirmFrames >= 0, "scroll confirm_frames must not be negative, got %d", c.Scroll.ConfirmFrames)

	check(c.Session.HandLostFrames >= 1, "hand_lost_frames must be at least 1, got %d", c.Session.HandLostFrames)
	check(c.Session.SensitivityStep > 0, "sensitivity_step must be positive, got %v", c.Session.SensitivityStep)
	check(c.Activity.Threshold >= 0, "activity threshold must not be negative, got %v", c.Activity.Threshold)

	return errors.Join(errs...)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
