package domain

import (
	"time"

	"github.com/shopspring/decimal"
	performancedomain "github.com/smallbiznis/clinicdesk/internal/performance/domain"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
)

const TopStaffLimit = 5

type Counts struct {
	Doctors           int64 `json:"doctors"`
	Staff             int64 `json:"staff"`
	Clients           int64 `json:"clients"`
	Treatments        int64 `json:"treatments"`
	AppointmentsToday int64 `json:"appointments_today"`
}

// Totals sum every bill in range, including house sales and bills whose
// assignee no longer exists.
type Totals struct {
	Bills   int             `json:"bills"`
	Sales   decimal.Decimal `json:"sales"`
	Billed  decimal.Decimal `json:"billed"`
	Pending decimal.Decimal `json:"pending"`
}

type BranchProgress struct {
	ID              string              `json:"id"`
	Amount          decimal.Decimal     `json:"amount"`
	Period          targetdomain.Period `json:"period"`
	WindowStart     time.Time           `json:"window_start"`
	WindowEnd       time.Time           `json:"window_end"`
	Achieved        decimal.Decimal     `json:"achieved"`
	Remaining       decimal.Decimal     `json:"remaining"`
	ProgressPercent decimal.Decimal     `json:"progress_percent"`
}

type Dashboard struct {
	Range        performancedomain.Range     `json:"range"`
	Counts       Counts                      `json:"counts"`
	Totals       Totals                      `json:"totals"`
	BranchTarget *BranchProgress             `json:"branch_target"`
	TopStaff     []performancedomain.Summary `json:"top_staff"`
}

// PeriodWindow returns the half-open window [start, end) of the period that
// contains now, on the calendar of loc. Weeks start on Monday.
func PeriodWindow(period targetdomain.Period, now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch period {
	case targetdomain.PeriodDaily:
		return day, day.AddDate(0, 0, 1)
	case targetdomain.PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case targetdomain.PeriodQuarterly:
		start := performancedomain.QuarterStart(day)
		return start, start.AddDate(0, 3, 0)
	case targetdomain.PeriodHalfYearly:
		month := time.January
		if now.Month() > time.June {
			month = time.July
		}
		start := time.Date(now.Year(), month, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 6, 0)
	case targetdomain.PeriodYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}
}
