package dates

import "time"

// Classification is the outcome of checking one date string against a
// window.
type Classification int

const (
	// InWindow means the parsed date falls inside the window, bounds
	// included.
	InWindow Classification = iota

	// OutOfWindow means the date parsed but falls outside the window.
	OutOfWindow

	// Unparseable means no date could be recovered from the input. A
	// missing or empty date field classifies here, never as a default
	// date.
	Unparseable
)

// String returns a short label for logs and skip reports.
func (c Classification) String() string {
	switch c {
	case InWindow:
		return "in window"
	case OutOfWindow:
		return "out of range"
	default:
		return "unparseable"
	}
}

// Window is an inclusive [Start, End] date range. Start <= End is not
// enforced: an inverted window classifies every parseable date as
// OutOfWindow.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow parses the two free-form bound strings into a window.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseFuzzy(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseFuzzy(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Classify parses rawDate and places it relative to the window. Dates equal
// to either bound are InWindow.
func (w Window) Classify(rawDate string) Classification {
	t, err := ParseFuzzy(rawDate)
	if err != nil {
		return Unparseable
	}
	if t.Before(w.Start) || t.After(w.End) {
		return OutOfWindow
	}
	return InWindow
}
