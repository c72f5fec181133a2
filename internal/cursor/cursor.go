// Package cursor maps fingertip positions to screen coordinates and smooths
// them into a steady pointer target.
package cursor

import "math"

// Point is a position in screen pixels.
type Point struct {
	X, Y float64
}

// Int returns the position truncated to whole pixels.
func (p Point) Int() (int, int) {
	return int(p.X), int(p.Y)
}

// Mapper converts normalized camera coordinates to absolute screen positions.
type Mapper struct {
	Width, Height int
	// Margin is the fraction of the camera frame stripped from every edge, so
	// the screen border is reachable without the hand leaving the frame.
	Margin float64
}

// Map returns the screen position for the normalized point (x, y). The
// horizontal axis is mirrored because the camera faces the user.
func (m Mapper) Map(x, y float64) Point {
	span := 1 - 2*m.Margin
	mx := (x - m.Margin) / span
	my := (y - m.Margin) / span

	sx := (1 - mx) * float64(m.Width)
	sy := my * float64(m.Height)

	return Point{
		X: clamp(sx, 0, float64(m.Width-1)),
		Y: clamp(sy, 0, float64(m.Height-1)),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
