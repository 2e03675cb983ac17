package domain

import (
	"strings"
	"time"
)

// Range selects the creation-time window a report covers.
type Range string

const (
	RangeAllTime     Range = "all_time"
	RangeThisMonth   Range = "this_month"
	RangeLastMonth   Range = "last_month"
	RangeThisQuarter Range = "this_quarter"
	RangeHalfYear    Range = "half_year"
	RangeThisYear    Range = "this_year"
)

// ParseRange maps unknown or empty values to RangeAllTime.
func ParseRange(value string) Range {
	switch r := Range(strings.ToLower(strings.TrimSpace(value))); r {
	case RangeThisMonth, RangeLastMonth, RangeThisQuarter, RangeHalfYear, RangeThisYear:
		return r
	default:
		return RangeAllTime
	}
}

// Contains reports whether t falls in the window relative to now. Both instants
// are compared on the calendar of loc.
func (r Range) Contains(t, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	now = now.In(loc)

	switch r {
	case RangeThisMonth:
		return sameMonth(t, now)
	case RangeLastMonth:
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		return sameMonth(t, prev)
	case RangeThisQuarter:
		start := QuarterStart(now)
		return !t.Before(start) && t.Before(start.AddDate(0, 3, 0))
	case RangeHalfYear:
		return t.After(now.AddDate(0, -6, 0))
	case RangeThisYear:
		return t.Year() == now.Year()
	default:
		return true
	}
}

// QuarterStart is midnight on the first day of the calendar quarter holding t.
func QuarterStart(t time.Time) time.Time {
	month := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), month, 1, 0, 0, 0, 0, t.Location())
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
