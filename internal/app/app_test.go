package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/handpointer/internal/capture"
	"github.com/ayusman/handpointer/internal/config"
	"github.com/ayusman/handpointer/internal/cursor"
	"github.com/ayusman/handpointer/internal/detector"
	"github.com/ayusman/handpointer/internal/interpret"
	"github.com/ayusman/handpointer/internal/pointer"
	"github.com/ayusman/handpointer/internal/session"
	"github.com/ayusman/handpointer/internal/store"
	"github.com/ayusman/handpointer/internal/timeutil"
)

const (
	testScreenW = 1920
	testScreenH = 1080
)

type testApp struct {
	app      *App
	recorder *pointer.Recorder
	detector *detector.MockDetector
	clock    *timeutil.MockClock
}

func testSettings() config.Config {
	s := config.Default()
	s.Activity.Enabled = false
	return s
}

func newTestApp(t *testing.T, st *store.Store) *testApp {
	t.Helper()
	ta := &testApp{
		recorder: pointer.NewRecorder(),
		detector: detector.NewMockDetector(),
		clock:    timeutil.NewMockClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
	}
	ta.app = New(Config{
		Settings:     testSettings(),
		Store:        st,
		Camera:       capture.NewMockCamera(nil, false),
		Detector:     ta.detector,
		Driver:       ta.recorder,
		ScreenWidth:  testScreenW,
		ScreenHeight: testScreenH,
		Clock:        ta.clock,
	})
	return ta
}

// session builds the session Run would create, with the history observer attached.
func (ta *testApp) session() *session.Session {
	driver := pointer.Observe(ta.recorder, ta.app.record)
	return session.New(ta.app.config.Settings, testScreenW, testScreenH, driver, ta.clock)
}

func (ta *testApp) step(t *testing.T, sess *session.Session, h *detector.HandLandmarks) {
	t.Helper()
	ta.clock.Advance(33 * time.Millisecond)
	require.NoError(t, sess.Step(h))
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestNew_Defaults(t *testing.T) {
	ta := newTestApp(t, nil)

	snap := ta.app.Snapshot()
	assert.Equal(t, interpret.StatusNoHand, snap.Stats.Status)
	assert.Equal(t, 0.25, snap.Smoothing)
	assert.False(t, snap.Running)
	assert.False(t, ta.app.Running())
	assert.Nil(t, ta.app.gate, "activity gate disabled in settings")
	assert.Same(t, ta.detector, ta.app.Detector())
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{CommandPause, "pause"},
		{CommandResume, "resume"},
		{CommandTogglePause, "toggle_pause"},
		{CommandFaster, "faster"},
		{CommandSmoother, "smoother"},
		{Command(42), "command(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestSensitivityCommand(t *testing.T) {
	assert.Equal(t, CommandFaster, SensitivityCommand(config.Faster))
	assert.Equal(t, CommandSmoother, SensitivityCommand(config.Smoother))
}

func TestSend_QueueFull(t *testing.T) {
	ta := newTestApp(t, nil)

	for i := 0; i < CommandQueueSize; i++ {
		require.True(t, ta.app.Send(CommandFaster), "send %d", i)
	}
	assert.False(t, ta.app.Send(CommandFaster), "send beyond capacity must drop")
}

func TestDrainCommands(t *testing.T) {
	t.Run("sensitivity", func(t *testing.T) {
		ta := newTestApp(t, nil)
		sess := ta.session()

		ta.app.Send(CommandFaster)
		ta.app.Send(CommandFaster)
		ta.app.Send(CommandSmoother)
		require.NoError(t, ta.app.drainCommands(sess))
		ta.app.publish(sess)

		assert.InDelta(t, 0.30, ta.app.Snapshot().Smoothing, 1e-9)
	})

	t.Run("pause and resume", func(t *testing.T) {
		ta := newTestApp(t, nil)
		sess := ta.session()

		ta.app.Send(CommandTogglePause)
		require.NoError(t, ta.app.drainCommands(sess))
		ta.app.publish(sess)
		assert.True(t, sess.Paused())
		assert.True(t, ta.app.Snapshot().Paused)
		assert.Equal(t, session.StatusPaused, ta.app.Snapshot().Stats.Status)

		ta.app.Send(CommandResume)
		require.NoError(t, ta.app.drainCommands(sess))
		assert.False(t, sess.Paused())

		ta.app.Send(CommandPause)
		ta.app.Send(CommandPause)
		require.NoError(t, ta.app.drainCommands(sess))
		assert.True(t, sess.Paused())
	})

	t.Run("pause releases a drag", func(t *testing.T) {
		ta := newTestApp(t, nil)
		sess := ta.session()
		fist := detector.FistLandmarks()
		for i := 0; i < 3; i++ {
			ta.step(t, sess, &fist)
		}
		require.True(t, ta.recorder.Held(pointer.ButtonLeft), "setup: drag did not start")

		ta.app.Send(CommandPause)
		require.NoError(t, ta.app.drainCommands(sess))

		assert.False(t, ta.recorder.Held(pointer.ButtonLeft))
		assert.Equal(t, 1, ta.recorder.Count(pointer.ActionUp))
	})

	t.Run("pause releases a drag after the fail-safe trips", func(t *testing.T) {
		ta := newTestApp(t, nil)
		sess := ta.session()
		fist := detector.FistLandmarks()
		for i := 0; i < 3; i++ {
			ta.step(t, sess, &fist)
		}
		ta.recorder.FailSafe = true

		ta.app.Send(CommandPause)
		require.NoError(t, ta.app.drainCommands(sess))

		assert.True(t, sess.Paused())
		assert.False(t, ta.recorder.Held(pointer.ButtonLeft))
		assert.False(t, sess.Stats().Dragging)
	})

	t.Run("empty queue", func(t *testing.T) {
		ta := newTestApp(t, nil)
		assert.NoError(t, ta.app.drainCommands(ta.session()))
	})
}

func TestEventKind(t *testing.T) {
	tests := []struct {
		name   string
		action pointer.Action
		want   store.EventKind
		ok     bool
	}{
		{"left click", pointer.Action{Kind: pointer.ActionClick, Button: pointer.ButtonLeft}, store.EventClick, true},
		{"right click", pointer.Action{Kind: pointer.ActionClick, Button: pointer.ButtonRight}, store.EventRightClick, true},
		{"double click", pointer.Action{Kind: pointer.ActionDoubleClick, Button: pointer.ButtonLeft}, store.EventDoubleClick, true},
		{"down", pointer.Action{Kind: pointer.ActionDown, Button: pointer.ButtonLeft}, store.EventDragStart, true},
		{"up", pointer.Action{Kind: pointer.ActionUp, Button: pointer.ButtonLeft}, store.EventDragEnd, true},
		{"scroll", pointer.Action{Kind: pointer.ActionScroll, Amount: -4}, store.EventScroll, true},
		{"move", pointer.Action{Kind: pointer.ActionMove, X: 1, Y: 2}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := eventKind(tt.action)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHistory(t *testing.T) {
	t.Run("records events and totals", func(t *testing.T) {
		st := newTestStore(t)
		ta := newTestApp(t, st)

		ta.app.begin()
		require.NotNil(t, ta.app.history)
		id := ta.app.history.ID

		ta.app.record(pointer.Action{Kind: pointer.ActionMove, X: 100, Y: 200})
		ta.app.record(pointer.Action{Kind: pointer.ActionClick, Button: pointer.ButtonLeft})
		ta.app.record(pointer.Action{Kind: pointer.ActionMove, X: 300, Y: 400})
		ta.app.record(pointer.Action{Kind: pointer.ActionScroll, Amount: -3})

		start := ta.clock.Now()
		ta.clock.Advance(time.Minute)
		ta.app.finish(session.Summary{
			StartedAt: start,
			EndedAt:   ta.clock.Now(),
			Frames:    1800,
			Stats:     interpret.Stats{Clicks: 1, Scrolls: 1},
		})
		assert.Nil(t, ta.app.history)

		saved, err := st.Sessions().GetByID(id)
		require.NoError(t, err)
		assert.True(t, saved.Finished())
		assert.Equal(t, 1800, saved.Frames)
		assert.Equal(t, 1, saved.Clicks)
		assert.Equal(t, 1, saved.Scrolls)

		events, err := st.Events().ListBySession(id)
		require.NoError(t, err)
		type row struct {
			Kind         store.EventKind
			X, Y, Amount int
		}
		var got []row
		for _, e := range events {
			got = append(got, row{e.Kind, e.X, e.Y, e.Amount})
		}
		want := []row{
			{store.EventClick, 100, 200, 0},
			{store.EventScroll, 300, 400, -3},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("flushes full batches", func(t *testing.T) {
		st := newTestStore(t)
		ta := newTestApp(t, st)
		ta.app.begin()
		id := ta.app.history.ID

		for i := 0; i < eventFlushSize; i++ {
			ta.app.record(pointer.Action{Kind: pointer.ActionClick, Button: pointer.ButtonLeft})
		}

		assert.Empty(t, ta.app.events)
		counts, err := st.Events().CountBySession(id)
		require.NoError(t, err)
		assert.Equal(t, eventFlushSize, counts[store.EventClick])
	})

	t.Run("without a store", func(t *testing.T) {
		ta := newTestApp(t, nil)
		ta.app.begin()

		ta.app.record(pointer.Action{Kind: pointer.ActionMove, X: 5, Y: 6})
		ta.app.record(pointer.Action{Kind: pointer.ActionClick, Button: pointer.ButtonLeft})
		ta.app.finish(session.Summary{})

		assert.Nil(t, ta.app.history)
		assert.Empty(t, ta.app.events)
		assert.Equal(t, 5, ta.app.lastX)
		assert.Equal(t, 6, ta.app.lastY)
	})
}

func TestSnapshot_CursorPercent(t *testing.T) {
	s := Snapshot{Stats: interpret.Stats{Cursor: cursor.Point{X: 1919, Y: 0}}}
	x, y := s.CursorPercent(testScreenW, testScreenH)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, y = s.CursorPercent(0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/30, frameInterval(30))
	assert.Equal(t, time.Second/5, frameInterval(IdleFPS))
	assert.Equal(t, time.Second/30, frameInterval(0))
}
