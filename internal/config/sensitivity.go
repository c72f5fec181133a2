package config

import "math"

// Direction is a sensitivity adjustment request.
type Direction int

const (
	// Faster raises the base smoothing factor: less lag, more jitter.
	Faster Direction = iota + 1
	// Smoother lowers the base smoothing factor: more lag, less jitter.
	Smoother
)

func (d Direction) String() string {
	switch d {
	case Faster:
		return "faster"
	case Smoother:
		return "smoother"
	default:
		return "unknown"
	}
}

// AdjustSensitivity moves Cursor.SmoothBase one step in dir, clamped to the
// session range, and returns the new value.
func (c *Config) AdjustSensitivity(dir Direction) float64 {
	step := c.Session.SensitivityStep
	switch dir {
	case Faster:
		c.Cursor.SmoothBase += step
	case Smoother:
		c.Cursor.SmoothBase -= step
	}
	// Round away float drift so repeated steps land on the same values.
	v := math.Round(c.Cursor.SmoothBase*1e6) / 1e6
	c.Cursor.SmoothBase = math.Max(c.Session.SmoothBaseMin, math.Min(c.Session.SmoothBaseMax, v))
	return c.Cursor.SmoothBase
}
