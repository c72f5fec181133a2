package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/ayusman/handpointer/internal/config"
	"github.com/ayusman/handpointer/internal/session"
)

// Command is a request from the tray to the frame loop.
type Command int

const (
	CommandPause Command = iota + 1
	CommandResume
	CommandTogglePause
	CommandFaster
	CommandSmoother
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandTogglePause:
		return "toggle_pause"
	case CommandFaster:
		return "faster"
	case CommandSmoother:
		return "smoother"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// SensitivityCommand maps a tray direction to its command.
func SensitivityCommand(dir config.Direction) Command {
	if dir == config.Faster {
		return CommandFaster
	}
	return CommandSmoother
}

// drainCommands applies every queued command without blocking.
func (a *App) drainCommands(sess *session.Session) error {
	var errs []error
	for {
		select {
		case cmd := <-a.commands:
			if err := a.apply(sess, cmd); err != nil {
				errs = append(errs, err)
			}
		default:
			return errors.Join(errs...)
		}
	}
}

func (a *App) apply(sess *session.Session, cmd Command) error {
	wasPaused := sess.Paused()
	var err error
	switch cmd {
	case CommandPause:
		err = sess.Pause()
	case CommandResume:
		sess.Resume()
	case CommandTogglePause:
		err = sess.TogglePause()
	case CommandFaster:
		sess.AdjustSensitivity(config.Faster)
	case CommandSmoother:
		sess.AdjustSensitivity(config.Smoother)
	default:
		log.Printf("Unknown command: %s", cmd)
		return nil
	}

	// The scene seen before a pause says nothing about the one after it.
	if sess.Paused() != wasPaused {
		a.tracking = false
		a.resetGate()
	}
	if err != nil {
		return fmt.Errorf("command %s: %w", cmd, err)
	}
	return nil
}
