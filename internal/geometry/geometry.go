// Package geometry provides planar vector helpers over hand landmarks.
// Z is ignored everywhere: finger tests work on the image-plane projection.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ayusman/handpointer/internal/detector"
)

// Epsilon is added to the norm product so zero-length rays resolve to 90°
// instead of dividing by zero.
const Epsilon = 1e-9

// Angle returns the angle in degrees at vertex b between the rays b→a and b→c.
// The result is always in [0, 180].
func Angle(a, b, c detector.Point3D) float64 {
	v1 := []float64{a.X - b.X, a.Y - b.Y}
	v2 := []float64{c.X - b.X, c.Y - b.Y}

	cos := floats.Dot(v1, v2) / (floats.Norm(v1, 2)*floats.Norm(v2, 2) + Epsilon)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}

// Distance returns the Euclidean distance between a and b on the XY plane.
func Distance(a, b detector.Point3D) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}
