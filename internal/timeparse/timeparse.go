// Package timeparse normalizes the date strings that show up in LMS
// exports. The grade history mixes day-first slash dates, dash dates
// with and without a comma, 12-hour clocks with AM/PM markers and ISO
// dates, so parsing walks an ordered ladder of known layouts before
// handing off to a generic parser.
package timeparse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// layouts are tried in order. Day-first variants come before the ISO
// ones; a month-first reading of 05/04/2025 would silently shift the
// deadline by a month, so the order matters.
var layouts = []string{
	"02/01/2006 03:04:05 PM",
	"02/01/2006 15:04:05",
	"02/01/2006 03:04 PM",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006, 15:04:05",
	"02-01-2006 15:04:05",
	"02-01-2006, 15:04",
	"02-01-2006 15:04",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// dateOnly marks the layouts that carry no clock. Those default to
// 23:59:00, end of day, matching how deadlines are announced.
var dateOnly = map[string]bool{
	"02/01/2006": true,
	"02-01-2006": true,
	"2006-01-02": true,
}

// Parse attempts each known layout in order and returns the first hit.
// Unparseable or empty input reports ok=false; it is never an error,
// the caller decides whether to drop the row.
func Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if dateOnly[layout] {
			t = EndOfDay(t)
		}
		return t, true
	}

	// Last resort: generic parser, still day-first.
	t, err := dateparse.ParseIn(text, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EndOfDay pins a timestamp to 23:59:00 on its date.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
}
