package cursor

import "math"

// Params tunes the adaptive exponential smoother.
type Params struct {
	// Base is the blend factor for slow hand motion (smoother, more lag).
	Base float64
	// Fast is the blend factor once the raw target moves faster than
	// VelocityThreshold pixels per frame.
	Fast              float64
	VelocityThreshold float64
	// DeadZone suppresses updates whose X and Y deltas are both below this
	// many pixels.
	DeadZone float64
}

// State is the smoother memory carried from frame to frame.
type State struct {
	Smoothed   Point
	PrevTarget Point
}

// NewState returns a smoother state resting at the centre of a w×h screen.
func NewState(w, h int) State {
	centre := Point{X: float64(w) / 2, Y: float64(h) / 2}
	return State{Smoothed: centre, PrevTarget: centre}
}

// Step blends target into the state and returns the new state. Step has no
// side effects; the caller emits the resulting Smoothed position.
func (s State) Step(target Point, p Params) State {
	velocity := math.Hypot(target.X-s.PrevTarget.X, target.Y-s.PrevTarget.Y)

	factor := p.Base
	if velocity > p.VelocityThreshold {
		factor = p.Fast
	}

	next := State{Smoothed: s.Smoothed, PrevTarget: target}

	blended := Point{
		X: s.Smoothed.X + (target.X-s.Smoothed.X)*factor,
		Y: s.Smoothed.Y + (target.Y-s.Smoothed.Y)*factor,
	}

	if math.Abs(blended.X-s.Smoothed.X) < p.DeadZone && math.Abs(blended.Y-s.Smoothed.Y) < p.DeadZone {
		return next
	}

	next.Smoothed = blended
	return next
}
