package gesture

import "testing"

func TestFilter_ConfirmsAfterK(t *testing.T) {
	tests := []struct {
		label Label
		k     int
	}{
		{LabelPoint, 2},
		{LabelPinch, 2},
		{LabelPeace, 2},
		{LabelScroll, 2},
		{LabelFist, 3},
	}

	for _, tt := range tests {
		t.Run(tt.label.String(), func(t *testing.T) {
			f := NewFilter(DefaultFilterConfig())

			for i := 1; i < tt.k; i++ {
				if f.Observe(tt.label) {
					t.Fatalf("confirmed after %d frames, want %d", i, tt.k)
				}
				if f.Confirmed() != LabelIdle {
					t.Fatalf("Confirmed() = %q before threshold", f.Confirmed())
				}
			}
			if !f.Observe(tt.label) {
				t.Fatalf("not confirmed after %d frames", tt.k)
			}
			if f.Confirmed() != tt.label {
				t.Errorf("Confirmed() = %q, want %q", f.Confirmed(), tt.label)
			}
			if f.Run() != tt.k {
				t.Errorf("Run() = %d, want %d", f.Run(), tt.k)
			}
		})
	}
}

func TestFilter_InterruptedRunDoesNotConfirm(t *testing.T) {
	f := NewFilter(DefaultFilterConfig())

	seq := []Label{LabelFist, LabelFist, LabelPoint, LabelFist, LabelFist}
	for i, l := range seq {
		if ok := f.Observe(l); ok && l == LabelFist {
			t.Fatalf("fist confirmed at frame %d", i)
		}
	}
	if f.Confirmed() == LabelFist {
		t.Error("fist confirmed without three consecutive frames")
	}
	if !f.Observe(LabelFist) {
		t.Error("third consecutive fist should confirm")
	}
}

func TestFilter_SteadyState(t *testing.T) {
	f := NewFilter(DefaultFilterConfig())
	f.Observe(LabelPoint)
	f.Observe(LabelPoint)

	for i := 0; i < 20; i++ {
		if !f.Observe(LabelPoint) {
			t.Fatalf("frame %d: confirmed label rejected", i)
		}
	}
	if f.Run() != 22 {
		t.Errorf("Run() = %d, want 22", f.Run())
	}
}

func TestFilter_KeepsPreviousOnFlicker(t *testing.T) {
	f := NewFilter(DefaultFilterConfig())
	f.Observe(LabelScroll)
	f.Observe(LabelScroll)

	if f.Observe(LabelPeace) {
		t.Error("single peace frame must not confirm")
	}
	if f.Confirmed() != LabelScroll {
		t.Errorf("Confirmed() = %q, want scroll", f.Confirmed())
	}
	if !f.Observe(LabelScroll) {
		t.Error("returning to the confirmed label should be accepted immediately")
	}
}

func TestFilter_IdleIsConfirmedInitially(t *testing.T) {
	f := NewFilter(DefaultFilterConfig())
	if !f.Observe(LabelIdle) {
		t.Error("idle should be accepted from a fresh filter")
	}
}

func TestFilter_Reset(t *testing.T) {
	f := NewFilter(DefaultFilterConfig())
	f.Observe(LabelFist)
	f.Observe(LabelFist)
	f.Observe(LabelFist)
	if f.Confirmed() != LabelFist {
		t.Fatalf("setup: Confirmed() = %q", f.Confirmed())
	}

	f.Reset()

	if f.Confirmed() != LabelIdle {
		t.Errorf("Confirmed() after Reset = %q, want idle", f.Confirmed())
	}
	if f.Run() != 0 {
		t.Errorf("Run() after Reset = %d, want 0", f.Run())
	}
	// History is gone: two more fist frames are not enough.
	f.Observe(LabelFist)
	if f.Observe(LabelFist) {
		t.Error("history survived Reset")
	}
}

func TestFilter_HistoryWraps(t *testing.T) {
	f := NewFilter(FilterConfig{ConfirmFrames: 2, FistConfirmFrames: 3, HistorySize: 3})
	seq := []Label{LabelPoint, LabelPeace, LabelPoint, LabelPeace, LabelPoint, LabelPeace, LabelPeace}
	var got bool
	for _, l := range seq {
		got = f.Observe(l)
	}
	if !got || f.Confirmed() != LabelPeace {
		t.Errorf("Confirmed() = %q, want peace after wrap", f.Confirmed())
	}
}

func TestNewFilter_HistoryCoversConfirmCounts(t *testing.T) {
	f := NewFilter(FilterConfig{ConfirmFrames: 2, FistConfirmFrames: 5, HistorySize: 1})
	for i := 0; i < 4; i++ {
		if f.Observe(LabelFist) {
			t.Fatalf("confirmed after %d frames", i+1)
		}
	}
	if !f.Observe(LabelFist) {
		t.Error("fifth fist should confirm")
	}
}

func TestLabel_Valid(t *testing.T) {
	for _, l := range Labels {
		if !l.Valid() {
			t.Errorf("%q reported invalid", l)
		}
	}
	if Label("wave").Valid() {
		t.Error("unknown label reported valid")
	}
}
