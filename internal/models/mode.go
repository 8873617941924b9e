package models

import (
	"strconv"
	"strings"
	"time"
)

// Mode selects the date format of a dataset and the granularity of the x-axis
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
	ModeHourly Mode = "hourly"
)

// DefaultMode is used when no mode, or an unknown one, is given
const DefaultMode = ModeDaily

// Modes lists every supported mode in document order
var Modes = []Mode{ModeDaily, ModeWeekly, ModeHourly}

// Layouts used by ParseDate
const (
	dailyLayout  = "2006-01-02"
	hourlyLayout = "15:04:05"
)

// weekZero is the Monday that opens week 1 of the reference year
var weekZero = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseMode maps a mode name to a Mode, falling back to DefaultMode
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWeekly:
		return ModeWeekly
	case ModeHourly:
		return ModeHourly
	default:
		return DefaultMode
	}
}

// Format returns the strftime-style pattern the mode parses
func (m Mode) Format() string {
	switch m {
	case ModeWeekly:
		return "%W"
	case ModeHourly:
		return "%H:%M:%S"
	default:
		return "%Y-%m-%d"
	}
}

// ParseDate parses a raw date string with the mode's format.
// It never fails loudly: an unparseable string yields the zero time and false.
func (m Mode) ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	switch m {
	case ModeWeekly:
		week, err := strconv.Atoi(raw)
		if err != nil || week < 0 || week > 53 || len(raw) > 2 {
			return time.Time{}, false
		}
		return weekZero.AddDate(0, 0, (week-1)*7), true
	case ModeHourly:
		t, err := time.Parse(hourlyLayout, raw)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(1900, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
	default:
		t, err := time.Parse(dailyLayout, raw)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}
