package interpret

import "time"

// pinchTracker applies hysteresis to the thumb/index distance: it closes
// below closeAt and only reopens above openAt.
type pinchTracker struct {
	closeAt, openAt float64
}

// update advances the pinch state for one frame. On the frame the pinch
// opens again it reports released with the time the pinch was held.
func (p pinchTracker) update(s *State, dist float64, now time.Time) (released bool, hold time.Duration) {
	switch s.Pinch {
	case PinchOpen:
		if dist < p.closeAt {
			s.Pinch = PinchClosed
			s.PinchStart = now
		}
	case PinchClosed:
		if dist > p.openAt {
			s.Pinch = PinchOpen
			hold = now.Sub(s.PinchStart)
			s.PinchStart = time.Time{}
			return true, hold
		}
	}
	return false, 0
}
