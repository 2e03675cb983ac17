package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	loc = time.UTC
	now = time.Date(2026, 5, 20, 12, 0, 0, 0, loc)
)

func amount(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func TestAggregateMatchesTargetsAndBills(t *testing.T) {
	directory := []Assignee{{ID: "1", Name: "Asha"}, {ID: "2", Name: "Bala"}}
	targets := []Target{
		{AssigneeID: "1", Amount: amount("5000"), CreatedAt: now},
		{AssigneeID: "1", Amount: amount("3000"), CreatedAt: now},
		{AssigneeID: "2", Amount: amount("2000"), CreatedAt: now},
	}
	bills := []Bill{
		{AssigneeName: "Asha", AmountPaid: amount("1000"), CreatedAt: now},
		{AssigneeName: "Asha", AmountPaid: amount("2000"), CreatedAt: now},
		{AssigneeName: "Nobody", AmountPaid: amount("700"), CreatedAt: now},
	}

	got := Aggregate(Input{Targets: targets, Bills: bills, Directory: directory}, now, loc)
	require.Len(t, got, 2)

	assert.Equal(t, "Asha", got[0].Name)
	assertMoney(t, "8000.00", got[0].Target)
	assertMoney(t, "3000.00", got[0].Achieved)
	assertMoney(t, "5000.00", got[0].Remaining)
	assertMoney(t, "37.50", got[0].ProgressPercent)

	assert.Equal(t, "Bala", got[1].Name)
	assertMoney(t, "2000.00", got[1].Target)
	assertMoney(t, "0.00", got[1].Achieved)
	assertMoney(t, "2000.00", got[1].Remaining)
}

func TestAggregateEdgeCases(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		got := Aggregate(Input{Bills: []Bill{{AssigneeName: "Asha", AmountPaid: amount("10"), CreatedAt: now}}}, now, loc)
		assert.Empty(t, got)
	})

	t.Run("idle assignee kept", func(t *testing.T) {
		got := Aggregate(Input{Directory: []Assignee{{ID: "1", Name: "Asha"}}}, now, loc)
		require.Len(t, got, 1)
		assert.True(t, got[0].Target.IsZero())
		assert.True(t, got[0].Remaining.IsZero())
		assert.True(t, got[0].ProgressPercent.IsZero())
	})

	t.Run("missing amounts", func(t *testing.T) {
		got := Aggregate(Input{
			Directory: []Assignee{{ID: "1", Name: "Asha"}},
			Targets:   []Target{{AssigneeID: "1", CreatedAt: now}, {AssigneeID: "1", Amount: amount("100"), CreatedAt: now}},
			Bills:     []Bill{{AssigneeName: "Asha", CreatedAt: now}, {AssigneeName: "Asha", AmountPaid: amount("150"), CreatedAt: now}},
		}, now, loc)
		require.Len(t, got, 1)
		assertMoney(t, "100.00", got[0].Target)
		assertMoney(t, "150.00", got[0].Achieved)
		assertMoney(t, "-50.00", got[0].Remaining)
	})

	t.Run("name match is exact", func(t *testing.T) {
		got := Aggregate(Input{
			Directory: []Assignee{{ID: "1", Name: "Asha"}},
			Bills:     []Bill{{AssigneeName: "asha", AmountPaid: amount("10"), CreatedAt: now}, {AssigneeName: "Asha ", AmountPaid: amount("10"), CreatedAt: now}},
		}, now, loc)
		require.Len(t, got, 1)
		assert.True(t, got[0].Achieved.IsZero())
	})
}

func TestAggregateNameFilter(t *testing.T) {
	directory := []Assignee{{ID: "1", Name: "Anne Smith"}, {ID: "2", Name: "Bala"}, {ID: "3", Name: "Joanna"}}

	got := Aggregate(Input{Directory: directory, NameFilter: "ANN"}, now, loc)
	require.Len(t, got, 2)
	assert.Equal(t, "Anne Smith", got[0].Name)
	assert.Equal(t, "Joanna", got[1].Name)

	got = Aggregate(Input{Directory: directory, NameFilter: "zed"}, now, loc)
	assert.Empty(t, got)
}

func TestAggregateRangeWindow(t *testing.T) {
	directory := []Assignee{{ID: "1", Name: "Asha"}}
	lastMonth := time.Date(2026, 4, 28, 9, 0, 0, 0, loc)

	got := Aggregate(Input{
		Directory: directory,
		Range:     RangeThisMonth,
		Targets: []Target{
			{AssigneeID: "1", Amount: amount("1000"), CreatedAt: lastMonth},
			{AssigneeID: "1", Amount: amount("400"), CreatedAt: now},
		},
		Bills: []Bill{
			{AssigneeName: "Asha", AmountPaid: amount("90"), CreatedAt: lastMonth},
			{AssigneeName: "Asha", AmountPaid: amount("10"), CreatedAt: now},
		},
	}, now, loc)
	require.Len(t, got, 1)
	assertMoney(t, "400.00", got[0].Target)
	assertMoney(t, "10.00", got[0].Achieved)
	assertMoney(t, "2.50", got[0].ProgressPercent)
}

func TestAggregateIsRepeatable(t *testing.T) {
	in := Input{
		Directory: []Assignee{{ID: "1", Name: "Asha"}},
		Targets:   []Target{{AssigneeID: "1", Amount: amount("300"), CreatedAt: now}},
		Bills:     []Bill{{AssigneeName: "Asha", AmountPaid: amount("100"), CreatedAt: now}},
	}
	first := Aggregate(in, now, loc)
	second := Aggregate(in, now, loc)
	assert.Equal(t, first, second)
}
