package pointer

import "sync"

// Recorder is an in-memory Driver that logs every call. It tracks which
// buttons are held so tests can check press/release pairing.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
	held    map[Button]bool
	x, y    int

	// FailSafe makes every subsequent call except Up return ErrFailSafe.
	FailSafe bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{held: make(map[Button]bool)}
}

func (r *Recorder) record(a Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailSafe && a.Kind != ActionUp {
		return ErrFailSafe
	}
	switch a.Kind {
	case ActionMove:
		r.x, r.y = a.X, a.Y
	case ActionDown:
		r.held[a.Button] = true
	case ActionUp:
		delete(r.held, a.Button)
	}
	r.actions = append(r.actions, a)
	return nil
}

func (r *Recorder) Move(x, y int) error {
	return r.record(Action{Kind: ActionMove, X: x, Y: y})
}

func (r *Recorder) Down(b Button) error {
	return r.record(Action{Kind: ActionDown, Button: b})
}

func (r *Recorder) Up(b Button) error {
	return r.record(Action{Kind: ActionUp, Button: b})
}

func (r *Recorder) Click(b Button) error {
	return r.record(Action{Kind: ActionClick, Button: b})
}

func (r *Recorder) DoubleClick(b Button) error {
	return r.record(Action{Kind: ActionDoubleClick, Button: b})
}

func (r *Recorder) Scroll(amount int) error {
	return r.record(Action{Kind: ActionScroll, Amount: amount})
}

// Actions returns a copy of the log. With kinds given, only actions of those
// kinds are returned.
func (r *Recorder) Actions(kinds ...ActionKind) []Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Action, 0, len(r.actions))
	for _, a := range r.actions {
		if len(kinds) == 0 || containsKind(kinds, a.Kind) {
			out = append(out, a)
		}
	}
	return out
}

// Count returns how many actions of kind were recorded.
func (r *Recorder) Count(kind ActionKind) int {
	return len(r.Actions(kind))
}

// Held reports whether b is currently pressed.
func (r *Recorder) Held(b Button) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[b]
}

// Position returns the last position passed to Move.
func (r *Recorder) Position() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y
}

// Reset clears the log. Held buttons are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
}

func containsKind(kinds []ActionKind, k ActionKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
