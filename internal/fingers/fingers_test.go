package fingers

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ayusman/handpointer/internal/detector"
)

func TestExtract_Presets(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want State
	}{
		{"open palm", detector.OpenPalmLandmarks(), State{true, true, true, true, true}},
		{"fist", detector.FistLandmarks(), State{}},
		{"pointing", detector.PointingLandmarks(), State{false, true, false, false, false}},
		{"peace", detector.PeaceLandmarks(), State{false, true, true, false, false}},
		{"pinch", detector.PinchLandmarks(0.03), State{true, true, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(&tt.hand)
			if got != tt.want {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyze_Predicates(t *testing.T) {
	tests := []struct {
		name                                 string
		hand                                 detector.HandLandmarks
		allCurled, openPalm, pointing, peace bool
	}{
		{"open palm", detector.OpenPalmLandmarks(), false, true, false, false},
		{"fist", detector.FistLandmarks(), true, false, false, false},
		{"pointing", detector.PointingLandmarks(), false, false, true, false},
		{"peace", detector.PeaceLandmarks(), false, false, false, true},
		{"peace pinch", detector.PeacePinchLandmarks(0.02), false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Analyze(&tt.hand)
			if p.AllCurled != tt.allCurled {
				t.Errorf("AllCurled = %v, want %v", p.AllCurled, tt.allCurled)
			}
			if p.OpenPalm != tt.openPalm {
				t.Errorf("OpenPalm = %v, want %v", p.OpenPalm, tt.openPalm)
			}
			if p.Pointing != tt.pointing {
				t.Errorf("Pointing = %v, want %v", p.Pointing, tt.pointing)
			}
			if p.Peace != tt.peace {
				t.Errorf("Peace = %v, want %v", p.Peace, tt.peace)
			}
		})
	}
}

func TestAnalyze_CurledAndPalmAreExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		var h detector.HandLandmarks
		for j := range h.Points {
			h.Points[j] = detector.Point3D{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64() - 0.5}
		}

		p := Analyze(&h)
		if p.AllCurled && p.OpenPalm {
			t.Fatalf("hand %d is both all-curled and open-palm: %+v", i, p.Fingers)
		}
		if p.AllCurled && p.Fingers != (State{}) {
			t.Fatalf("hand %d all-curled with extended digits: %+v", i, p.Fingers)
		}
	}
}

func TestAnalyze_PinchDistance(t *testing.T) {
	for _, gap := range []float64{0, 0.045, 0.065, 0.1} {
		hand := detector.PinchLandmarks(gap)
		if got := Analyze(&hand).PinchDistance; math.Abs(got-gap) > 1e-12 {
			t.Errorf("PinchDistance = %v, want %v", got, gap)
		}
	}
}

func TestAnalyze_PalmY(t *testing.T) {
	hand := detector.OpenPalmLandmarks()
	var want float64
	for _, idx := range detector.PalmPoints {
		want += hand.Points[idx].Y
	}
	want /= float64(len(detector.PalmPoints))

	p := Analyze(&hand)
	if math.Abs(p.PalmY-want) > 1e-12 {
		t.Errorf("PalmY = %f, want %f", p.PalmY, want)
	}

	moved := hand.Translate(0, 0.05)
	if got := Analyze(&moved).PalmY; math.Abs(got-(want+0.05)) > 1e-12 {
		t.Errorf("translated PalmY = %f, want %f", got, want+0.05)
	}
	if Analyze(&moved).Fingers != p.Fingers {
		t.Error("translation must not change finger state")
	}
}

func TestFingerExtended_RequiresStraightJoint(t *testing.T) {
	// Tip far from the wrist but bent sharply at the PIP joint.
	hand := detector.PointingLandmarks()
	hand.Points[detector.IndexPIP] = detector.Point3D{X: 0.70, Y: 0.55}
	hand.Points[detector.IndexTip] = detector.Point3D{X: 0.56, Y: 0.40}

	if Extract(&hand).Index() {
		t.Error("bent index finger should not count as extended")
	}
}
