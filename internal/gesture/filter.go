package gesture

// DefaultHistorySize is the number of raw labels remembered by a Filter.
const DefaultHistorySize = 8

// FilterConfig controls how many consecutive frames confirm a gesture change.
type FilterConfig struct {
	// ConfirmFrames is the run length required for most labels.
	ConfirmFrames int
	// FistConfirmFrames is the run length required for LabelFist, which
	// grabs the mouse button and is therefore held to a stricter bar.
	FistConfirmFrames int
	// HistorySize bounds the raw label history. It must be at least the
	// larger of the two confirm counts.
	HistorySize int
}

// DefaultFilterConfig returns the stock confirmation settings.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		ConfirmFrames:     2,
		FistConfirmFrames: 3,
		HistorySize:       DefaultHistorySize,
	}
}

// Filter debounces raw per-frame labels. The confirmed label only changes
// once the most recent k observations all agree on a new candidate.
type Filter struct {
	config    FilterConfig
	history   []Label
	next      int
	count     int
	confirmed Label
	run       int
}

// NewFilter creates a Filter with an empty history and LabelIdle confirmed.
func NewFilter(config FilterConfig) *Filter {
	if config.ConfirmFrames < 1 {
		config.ConfirmFrames = 1
	}
	if config.FistConfirmFrames < 1 {
		config.FistConfirmFrames = 1
	}
	size := max(config.HistorySize, config.ConfirmFrames, config.FistConfirmFrames)
	config.HistorySize = size

	return &Filter{
		config:    config,
		history:   make([]Label, size),
		confirmed: LabelIdle,
	}
}

// Observe records one raw label and reports whether it is the confirmed
// gesture after this frame.
func (f *Filter) Observe(label Label) bool {
	f.history[f.next] = label
	f.next = (f.next + 1) % len(f.history)
	if f.count < len(f.history) {
		f.count++
	}

	if label == f.confirmed {
		f.run++
		return true
	}

	k := f.config.ConfirmFrames
	if label == LabelFist {
		k = f.config.FistConfirmFrames
	}
	if f.count < k {
		return false
	}
	for i := 1; i <= k; i++ {
		if f.at(i) != label {
			return false
		}
	}

	f.confirmed = label
	f.run = k
	return true
}

// Confirmed returns the currently confirmed label.
func (f *Filter) Confirmed() Label {
	return f.confirmed
}

// Run returns how many observations have matched the confirmed label since
// it was confirmed, including the confirming frames.
func (f *Filter) Run() int {
	return f.run
}

// Reset clears the history and returns to LabelIdle.
func (f *Filter) Reset() {
	for i := range f.history {
		f.history[i] = ""
	}
	f.next = 0
	f.count = 0
	f.confirmed = LabelIdle
	f.run = 0
}

// at returns the i-th most recent label, 1 being the latest.
func (f *Filter) at(i int) Label {
	n := len(f.history)
	return f.history[(f.next-i+n*2)%n]
}
