// Package gesture classifies hand poses into a small closed set of labels and
// debounces them over consecutive frames.
package gesture

// Label is a per-frame gesture classification.
type Label string

const (
	// LabelIdle is a hand that matches no other gesture.
	LabelIdle Label = "idle"
	// LabelPoint is the index finger alone extended; it steers the pointer.
	LabelPoint Label = "point"
	// LabelPinch is thumb and index tips held together.
	LabelPinch Label = "pinch"
	// LabelPeace is index and middle extended; a pinch released in this pose right-clicks.
	LabelPeace Label = "peace"
	// LabelFist is every digit curled; it grabs for drag.
	LabelFist Label = "fist"
	// LabelScroll is an open palm; vertical palm motion scrolls.
	LabelScroll Label = "scroll"
)

// Labels lists every label in display order.
var Labels = []Label{LabelIdle, LabelPoint, LabelPinch, LabelPeace, LabelFist, LabelScroll}

func (l Label) String() string {
	return string(l)
}

// Valid reports whether l belongs to the closed label set.
func (l Label) Valid() bool {
	for _, known := range Labels {
		if l == known {
			return true
		}
	}
	return false
}
