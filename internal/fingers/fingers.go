// Package fingers classifies each digit of a tracked hand as extended or
// curled and derives the pose predicates the pointer controller acts on.
// Everything here is recomputed from a single frame; there is no state.
package fingers

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/handpointer/internal/detector"
	"github.com/ayusman/handpointer/internal/geometry"
)

const (
	// TipRatio: a finger is extended only if its tip is farther from the
	// wrist than TipRatio times its PIP joint.
	TipRatio = 0.82
	// MinPIPAngle is the minimum angle (degrees) at the PIP joint for a
	// straight finger.
	MinPIPAngle = 140.0
	// ThumbRatio: the thumb is extended if its tip is farther from the index
	// base than ThumbRatio times the thumb MCP is.
	ThumbRatio = 0.78
)

// State records which digits are extended, indexed by detector.Finger.
type State [5]bool

// Thumb reports whether the thumb is extended.
func (s State) Thumb() bool { return s[detector.Thumb] }

// Index reports whether the index finger is extended.
func (s State) Index() bool { return s[detector.Index] }

// Middle reports whether the middle finger is extended.
func (s State) Middle() bool { return s[detector.Middle] }

// Ring reports whether the ring finger is extended.
func (s State) Ring() bool { return s[detector.Ring] }

// Pinky reports whether the pinky is extended.
func (s State) Pinky() bool { return s[detector.Pinky] }

// ExtendedFingers counts the extended non-thumb fingers.
func (s State) ExtendedFingers() int {
	n := 0
	for _, f := range []detector.Finger{detector.Index, detector.Middle, detector.Ring, detector.Pinky} {
		if s[f] {
			n++
		}
	}
	return n
}

// Extract classifies all five digits of h.
func Extract(h *detector.HandLandmarks) State {
	var s State
	s[detector.Thumb] = thumbExtended(h)
	for _, f := range []detector.Finger{detector.Index, detector.Middle, detector.Ring, detector.Pinky} {
		s[f] = fingerExtended(h, detector.FingerJoints[f])
	}
	return s
}

// fingerExtended requires both a long reach from the wrist and a straight PIP
// joint; either alone lets curled-but-far or straight-but-rotated fingers through.
func fingerExtended(h *detector.HandLandmarks, j detector.Joints) bool {
	wrist := h.Points[detector.Wrist]
	tipReach := geometry.Distance(h.Points[j.Tip], wrist)
	pipReach := geometry.Distance(h.Points[j.PIP], wrist)
	angle := geometry.Angle(h.Points[j.MCP], h.Points[j.PIP], h.Points[j.Tip])

	return tipReach > pipReach*TipRatio && angle > MinPIPAngle
}

func thumbExtended(h *detector.HandLandmarks) bool {
	indexBase := h.Points[detector.IndexMCP]
	tipToIndex := geometry.Distance(h.Points[detector.ThumbTip], indexBase)
	mcpToIndex := geometry.Distance(h.Points[detector.ThumbMCP], indexBase)

	return tipToIndex > mcpToIndex*ThumbRatio
}

// Pose bundles the finger state of one frame with its derived predicates.
type Pose struct {
	Fingers State

	AllCurled bool // no digit extended, thumb included
	OpenPalm  bool // all four fingers and the thumb extended
	Pointing  bool // index is the only extended finger (thumb ignored)
	Peace     bool // index and middle extended, ring and pinky curled

	// PinchDistance is the planar distance between thumb tip and index tip.
	PinchDistance float64
	// PalmY is the mean Y of the wrist and the four finger bases.
	PalmY float64
	// IndexTip is the landmark that drives the cursor.
	IndexTip detector.Point3D
}

// Analyze extracts finger state and predicates from h.
func Analyze(h *detector.HandLandmarks) Pose {
	s := Extract(h)
	extended := s.ExtendedFingers()

	return Pose{
		Fingers:       s,
		AllCurled:     extended == 0 && !s.Thumb(),
		OpenPalm:      extended == 4 && s.Thumb(),
		Pointing:      s.Index() && !s.Middle() && !s.Ring() && !s.Pinky(),
		Peace:         s.Index() && s.Middle() && !s.Ring() && !s.Pinky(),
		PinchDistance: geometry.Distance(h.Points[detector.ThumbTip], h.Points[detector.IndexTip]),
		PalmY:         palmY(h),
		IndexTip:      h.Points[detector.IndexTip],
	}
}

func palmY(h *detector.HandLandmarks) float64 {
	ys := make([]float64, len(detector.PalmPoints))
	for i, idx := range detector.PalmPoints {
		ys[i] = h.Points[idx].Y
	}
	return stat.Mean(ys, nil)
}
