// Package dates provides tolerant parsing of bibliographic date strings and
// classification against a configured date window.
//
// Publication dates in reference libraries are free-form: bare years,
// "March 2021", ISO dates, or prose with a date buried inside. Parsing is
// forgiving and all comparisons are zone-naive; time-zone information is
// discarded entirely.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts tried in order against the whole (trimmed) input. Missing month
// and day components default to January 1.
var layouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006-01",
	"2006-1",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

// Zoned layouts are parsed and then flattened to their date components so
// the zone cannot shift the calendar day.
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var (
	monthYearRegex = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?,?\s+(\d{4})\b`)
	yearRegex      = regexp.MustCompile(`\b([12]\d{3})\b`)
)

// ParseFuzzy parses a free-form publication date string. The whole string is
// tried against known layouts first; failing that, a month-plus-year or bare
// year embedded in surrounding text is accepted. An empty or unrecognizable
// string is an error.
func ParseFuzzy(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), nil
		}
	}

	if m := monthYearRegex.FindStringSubmatch(s); m != nil {
		month := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		for _, layout := range []string{"January 2006", "Jan 2006"} {
			if t, err := time.Parse(layout, month+" "+m[2]); err == nil {
				return t, nil
			}
		}
	}
	if m := yearRegex.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006", m[1]); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

// truncateToDay drops the time-of-day and zone, keeping the calendar date as
// written.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
