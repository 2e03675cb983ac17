package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
)

const UnassignedKey = "Unassigned"

type GroupBy string

const (
	GroupByStaff  GroupBy = "staff"
	GroupByClient GroupBy = "client"
	GroupByDoctor GroupBy = "doctor"
)

// ParseGroupBy defaults an empty value to staff.
func ParseGroupBy(value string) (GroupBy, error) {
	switch GroupBy(value) {
	case "":
		return GroupByStaff, nil
	case GroupByStaff, GroupByClient, GroupByDoctor:
		return GroupBy(value), nil
	default:
		return "", ErrInvalidGroupBy
	}
}

type Service interface {
	Bills(ctx context.Context, req Request) (BillReport, error)
}

// Request bounds are calendar days, both inclusive.
type Request struct {
	GroupBy string
	From    *time.Time
	To      *time.Time
}

type Group struct {
	Key           string            `json:"key"`
	Bills         []billdomain.Bill `json:"bills"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	PendingAmount decimal.Decimal   `json:"pending_amount"`
}

type BillReport struct {
	GroupBy       GroupBy         `json:"group_by"`
	From          *time.Time      `json:"from,omitempty"`
	To            *time.Time      `json:"to,omitempty"`
	Groups        []Group         `json:"groups"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

var (
	ErrInvalidGroupBy = errors.New("invalid_group_by")
	ErrInvalidRange   = errors.New("invalid_range")
)

// GroupBills buckets bills in first-seen order. keyOf returning "" files the
// bill under UnassignedKey.
func GroupBills(bills []billdomain.Bill, keyOf func(billdomain.Bill) string) []Group {
	groups := make([]Group, 0)
	index := map[string]int{}
	for _, b := range bills {
		key := keyOf(b)
		if key == "" {
			key = UnassignedKey
		}
		idx, ok := index[key]
		if !ok {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, Group{Key: key})
		}
		g := &groups[idx]
		g.Bills = append(g.Bills, b)
		g.TotalAmount = g.TotalAmount.Add(b.TotalAmount)
		g.AmountPaid = g.AmountPaid.Add(b.AmountPaid)
		g.PendingAmount = g.PendingAmount.Add(b.PendingAmount)
	}
	return groups
}
