package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Target is the slice of a sales target the aggregator reads. A null Amount is
// skipped.
type Target struct {
	AssigneeID string
	Amount     decimal.NullDecimal
	CreatedAt  time.Time
}

// Bill carries the denormalized assignee name. A null AmountPaid counts as 0.
type Bill struct {
	AssigneeName string
	AmountPaid   decimal.NullDecimal
	CreatedAt    time.Time
}

type Assignee struct {
	ID   string
	Name string
}

type Summary struct {
	AssigneeID      string          `json:"assignee_id"`
	Name            string          `json:"name"`
	Target          decimal.Decimal `json:"target"`
	Achieved        decimal.Decimal `json:"achieved"`
	Remaining       decimal.Decimal `json:"remaining"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
}

type Input struct {
	Targets    []Target
	Bills      []Bill
	Directory  []Assignee
	Range      Range
	NameFilter string
}

// Aggregate folds targets and bills into one summary per directory entry, in
// directory order. Targets match by assignee id, bills by exact name. Unmatched
// records are dropped and remaining may go negative.
func Aggregate(in Input, now time.Time, loc *time.Location) []Summary {
	summaries := make([]Summary, 0, len(in.Directory))
	byID := make(map[string]int, len(in.Directory))
	byName := make(map[string]int, len(in.Directory))
	for _, a := range in.Directory {
		idx := len(summaries)
		summaries = append(summaries, Summary{AssigneeID: a.ID, Name: a.Name})
		if _, dup := byID[a.ID]; !dup {
			byID[a.ID] = idx
		}
		if _, dup := byName[a.Name]; !dup {
			byName[a.Name] = idx
		}
	}

	for _, t := range in.Targets {
		if !t.Amount.Valid || !in.Range.Contains(t.CreatedAt, now, loc) {
			continue
		}
		if idx, ok := byID[t.AssigneeID]; ok {
			summaries[idx].Target = summaries[idx].Target.Add(t.Amount.Decimal)
		}
	}

	for _, b := range in.Bills {
		if !in.Range.Contains(b.CreatedAt, now, loc) {
			continue
		}
		idx, ok := byName[b.AssigneeName]
		if !ok {
			continue
		}
		if b.AmountPaid.Valid {
			summaries[idx].Achieved = summaries[idx].Achieved.Add(b.AmountPaid.Decimal)
		}
	}

	filter := strings.ToLower(in.NameFilter)
	out := summaries[:0]
	for _, s := range summaries {
		if filter != "" && !strings.Contains(strings.ToLower(s.Name), filter) {
			continue
		}
		s.Remaining = s.Target.Sub(s.Achieved)
		s.ProgressPercent = Progress(s.Achieved, s.Target)
		out = append(out, s)
	}
	return out
}

// Progress is achieved as a percentage of target, rounded to two places. A zero
// target yields zero.
func Progress(achieved, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return achieved.Div(target).Mul(decimal.NewFromInt(100)).Round(2)
}
