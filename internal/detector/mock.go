package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a scripted implementation of the Detector interface.
// Queued results are returned one per call; once the queue is drained the
// fallback hand (possibly nil) is returned.
type MockDetector struct {
	mu       sync.Mutex
	queue    []*HandLandmarks
	fallback *HandLandmarks
	err      error
	calls    int
}

// NewMockDetector creates a new MockDetector that reports no hand.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHand sets the hand returned once the queue is empty. Pass nil for "no hand".
func (m *MockDetector) SetHand(hand *HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = hand
}

// Enqueue appends per-frame results. A nil entry is a frame without a hand.
func (m *MockDetector) Enqueue(hands ...*HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, hands...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the next scripted result.
func (m *MockDetector) Detect(frame *gocv.Mat) (*HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hand := m.queue[0]
		m.queue = m.queue[1:]
		return hand, nil
	}
	return m.fallback, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset joint positions for a right hand facing the camera, wrist at (0.5, 0.8).
var (
	presetWrist = Point3D{X: 0.5, Y: 0.8}

	thumbOut = [4]Point3D{
		{X: 0.55, Y: 0.75, Z: 0.02}, {X: 0.62, Y: 0.70, Z: 0.03},
		{X: 0.68, Y: 0.65, Z: 0.03}, {X: 0.73, Y: 0.60, Z: 0.03},
	}
	thumbTucked = [4]Point3D{
		{X: 0.55, Y: 0.75}, {X: 0.60, Y: 0.72},
		{X: 0.58, Y: 0.68}, {X: 0.54, Y: 0.66},
	}

	fingersOut = [4][4]Point3D{
		{{X: 0.55, Y: 0.68}, {X: 0.57, Y: 0.55}, {X: 0.58, Y: 0.45}, {X: 0.58, Y: 0.35}},
		{{X: 0.50, Y: 0.66}, {X: 0.50, Y: 0.52}, {X: 0.50, Y: 0.40}, {X: 0.50, Y: 0.28}},
		{{X: 0.45, Y: 0.68}, {X: 0.43, Y: 0.55}, {X: 0.42, Y: 0.45}, {X: 0.42, Y: 0.35}},
		{{X: 0.40, Y: 0.70}, {X: 0.37, Y: 0.60}, {X: 0.35, Y: 0.50}, {X: 0.34, Y: 0.42}},
	}
	fingersCurled = [4][4]Point3D{
		{{X: 0.55, Y: 0.68}, {X: 0.55, Y: 0.60, Z: -0.05}, {X: 0.54, Y: 0.65, Z: -0.04}, {X: 0.54, Y: 0.70, Z: -0.02}},
		{{X: 0.50, Y: 0.66}, {X: 0.50, Y: 0.58, Z: -0.05}, {X: 0.49, Y: 0.63, Z: -0.04}, {X: 0.49, Y: 0.68, Z: -0.02}},
		{{X: 0.45, Y: 0.68}, {X: 0.45, Y: 0.60, Z: -0.05}, {X: 0.46, Y: 0.65, Z: -0.04}, {X: 0.46, Y: 0.70, Z: -0.02}},
		{{X: 0.40, Y: 0.70}, {X: 0.40, Y: 0.63, Z: -0.05}, {X: 0.41, Y: 0.67, Z: -0.04}, {X: 0.41, Y: 0.72, Z: -0.02}},
	}
)

// buildPose assembles a hand from a thumb chain and the set of extended fingers
// (index..pinky in that order).
func buildPose(thumb [4]Point3D, extended [4]bool) HandLandmarks {
	hand := HandLandmarks{Handedness: "Right", Score: 0.95}
	hand.Points[Wrist] = presetWrist

	for i, p := range thumb {
		hand.Points[ThumbCMC+i] = p
	}
	for f := 0; f < 4; f++ {
		chain := fingersCurled[f]
		if extended[f] {
			chain = fingersOut[f]
		}
		base := FingerJoints[Index+Finger(f)].MCP
		for i, p := range chain {
			hand.Points[base+i] = p
		}
	}
	return hand
}

// OpenPalmLandmarks returns a hand with all five digits extended.
func OpenPalmLandmarks() HandLandmarks {
	return buildPose(thumbOut, [4]bool{true, true, true, true})
}

// FistLandmarks returns a hand with every digit curled, thumb tucked across the index base.
func FistLandmarks() HandLandmarks {
	return buildPose(thumbTucked, [4]bool{})
}

// PointingLandmarks returns a hand with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	return buildPose(thumbTucked, [4]bool{true, false, false, false})
}

// PeaceLandmarks returns a hand with index and middle extended, ring and pinky curled.
func PeaceLandmarks() HandLandmarks {
	return buildPose(thumbTucked, [4]bool{true, true, false, false})
}

// PinchLandmarks returns a pointing hand whose thumb tip sits gap units to the
// right of the index tip, so the pinch distance equals gap.
func PinchLandmarks(gap float64) HandLandmarks {
	return buildPose(pinchThumb(gap), [4]bool{true, false, false, false})
}

// PeacePinchLandmarks is PinchLandmarks with the middle finger also extended.
func PeacePinchLandmarks(gap float64) HandLandmarks {
	return buildPose(pinchThumb(gap), [4]bool{true, true, false, false})
}

func pinchThumb(gap float64) [4]Point3D {
	tip := fingersOut[0][3]
	return [4]Point3D{
		{X: 0.55, Y: 0.75}, {X: 0.60, Y: 0.62},
		{X: 0.60, Y: 0.45}, {X: tip.X + gap, Y: tip.Y},
	}
}
