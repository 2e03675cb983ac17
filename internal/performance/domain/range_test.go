package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRange(t *testing.T) {
	assert.Equal(t, RangeThisQuarter, ParseRange(" This_Quarter "))
	assert.Equal(t, RangeHalfYear, ParseRange("half_year"))
	assert.Equal(t, RangeAllTime, ParseRange(""))
	assert.Equal(t, RangeAllTime, ParseRange("fortnight"))
}

func TestRangeContains(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rng  Range
		at   time.Time
		want bool
	}{
		{name: "this month start", rng: RangeThisMonth, at: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "this month prior month within 30 days", rng: RangeThisMonth, at: time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC), want: false},
		{name: "this month last year", rng: RangeThisMonth, at: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), want: false},
		{name: "last month", rng: RangeLastMonth, at: time.Date(2026, 4, 30, 23, 0, 0, 0, time.UTC), want: true},
		{name: "last month excludes current", rng: RangeLastMonth, at: now, want: false},
		{name: "quarter start", rng: RangeThisQuarter, at: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "quarter last day evening", rng: RangeThisQuarter, at: time.Date(2026, 6, 30, 22, 0, 0, 0, time.UTC), want: true},
		{name: "quarter next", rng: RangeThisQuarter, at: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), want: false},
		{name: "quarter previous", rng: RangeThisQuarter, at: time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), want: false},
		{name: "half year five months ago", rng: RangeHalfYear, at: now.AddDate(0, -5, 0), want: true},
		{name: "half year seven months ago", rng: RangeHalfYear, at: now.AddDate(0, -7, 0), want: false},
		{name: "half year boundary excluded", rng: RangeHalfYear, at: now.AddDate(0, -6, 0), want: false},
		{name: "this year", rng: RangeThisYear, at: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "previous year", rng: RangeThisYear, at: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), want: false},
		{name: "all time", rng: RangeAllTime, at: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rng.Contains(tc.at, now, time.UTC))
		})
	}
}

func TestLastMonthInJanuary(t *testing.T) {
	now := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	assert.True(t, RangeLastMonth.Contains(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), now, time.UTC))
	assert.False(t, RangeLastMonth.Contains(time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC), now, time.UTC))
}

func TestRangeUsesClinicCalendar(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, kolkata)
	// 30 April 20:00 UTC is already 1 May in the clinic's zone.
	at := time.Date(2026, 4, 30, 20, 0, 0, 0, time.UTC)

	assert.True(t, RangeThisMonth.Contains(at, now, kolkata))
	assert.False(t, RangeThisMonth.Contains(at, now, time.UTC))
}

func TestQuarterStart(t *testing.T) {
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), QuarterStart(time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), QuarterStart(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
}
