package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewActivityGate(t *testing.T) {
	g := NewActivityGate(0.5)
	defer g.Close()

	if g.threshold != 0.5 {
		t.Errorf("threshold = %f, want 0.5", g.threshold)
	}
	if g.primed {
		t.Error("gate should have no baseline initially")
	}
}

func TestActivityGate_FirstFrameIsActive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	g := NewActivityGate(1.0)
	defer g.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	if active, _ := g.Active(&frame); !active {
		t.Error("first frame should be active")
	}
	if active, changed := g.Active(&frame); active {
		t.Errorf("identical frame reported active, changed = %f", changed)
	}
}

func TestActivityGate_DetectsChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	g := NewActivityGate(1.0)
	defer g.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	g.Active(&black)
	active, changed := g.Active(&white)
	if !active {
		t.Errorf("black to white should be active, changed = %f", changed)
	}
	if changed < 50 {
		t.Errorf("changed = %f, want > 50", changed)
	}
}

func TestActivityGate_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	g := NewActivityGate(1.0)
	defer g.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	g.Active(&frame)
	g.Reset()

	if g.primed {
		t.Error("gate should have no baseline after Reset")
	}
	if !g.prev.Empty() {
		t.Error("baseline frame should be released after Reset")
	}
	if active, _ := g.Active(&frame); !active {
		t.Error("first frame after Reset should be active")
	}
}

func TestActivityGate_EmptyFrame(t *testing.T) {
	g := NewActivityGate(1.0)
	defer g.Close()

	if active, _ := g.Active(nil); active {
		t.Error("nil frame should not be active")
	}
}

func TestActivityGate_CloseTwice(t *testing.T) {
	g := NewActivityGate(1.0)
	g.Close()
	g.Close()
}
