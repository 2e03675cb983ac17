// Package billcalc derives the GST-inclusive total and the pending balance of a bill.
package billcalc

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names the form input that just changed.
type Field string

const (
	FieldCost        Field = "cost"
	FieldTotalAmount Field = "total_amount"
	FieldAmountPaid  Field = "amount_paid"
)

// TaxMultiplier is cost plus 18% GST.
var TaxMultiplier = decimal.RequireFromString("1.18")

const places = 2

// MaxAmount is the largest value a decimal(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// maxAmountLen bounds the raw input so parsing stays cheap.
const maxAmountLen = 32

var (
	ErrInvalidField          = errors.New("invalid_field")
	ErrInvalidCost           = errors.New("invalid_cost")
	ErrInvalidTotalAmount    = errors.New("invalid_total_amount")
	ErrInvalidAmountPaid     = errors.New("invalid_amount_paid")
	ErrNegativePendingAmount = errors.New("negative_pending_amount")
)

// Value is a form field as typed by the operator. It accepts JSON strings,
// numbers and null.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = Value(n.String())
	return nil
}

// Form is the in-progress state of a bill's money fields.
type Form struct {
	Cost          Value `json:"cost"`
	AmountPaid    Value `json:"amount_paid"`
	TotalAmount   Value `json:"total_amount"`
	PendingAmount Value `json:"pending_amount"`
}

// Amounts are validated money values ready to persist.
type Amounts struct {
	Cost          decimal.Decimal
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	PendingAmount decimal.Decimal
}

func ParseField(value string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(value))) {
	case FieldCost:
		return FieldCost, nil
	case FieldTotalAmount:
		return FieldTotalAmount, nil
	case FieldAmountPaid:
		return FieldAmountPaid, nil
	default:
		return "", ErrInvalidField
	}
}

// Apply recomputes the fields that depend on changed and returns the new form.
// A cost edit always overwrites total_amount, including a total typed by hand.
// Negative pending amounts are left as is.
func Apply(form Form, changed Field) Form {
	switch changed {
	case FieldCost:
		if cost, ok := ParseAmount(string(form.Cost)); ok {
			form.TotalAmount = Value(Format(TotalFromCost(cost)))
		} else {
			form.TotalAmount = ""
		}
		form.PendingAmount = derivePending(form)
	case FieldTotalAmount, FieldAmountPaid:
		form.PendingAmount = derivePending(form)
	}
	return form
}

func derivePending(form Form) Value {
	total, ok := ParseAmount(string(form.TotalAmount))
	if !ok {
		return ""
	}
	paid, ok := ParseAmount(string(form.AmountPaid))
	if !ok {
		return form.TotalAmount
	}
	return Value(Format(Pending(total, paid)))
}

// Submit validates the form for persistence. An empty total is derived from
// cost and an empty amount paid counts as zero.
func Submit(form Form) (Amounts, error) {
	cost, err := parseRequired(string(form.Cost), ErrInvalidCost)
	if err != nil {
		return Amounts{}, err
	}

	total := TotalFromCost(cost)
	if total.GreaterThan(MaxAmount) {
		return Amounts{}, ErrInvalidCost
	}
	if strings.TrimSpace(string(form.TotalAmount)) != "" {
		parsed, ok := ParseAmount(string(form.TotalAmount))
		if !ok {
			return Amounts{}, ErrInvalidTotalAmount
		}
		total = parsed.Round(places)
	}

	paid := decimal.Zero
	if strings.TrimSpace(string(form.AmountPaid)) != "" {
		parsed, ok := ParseAmount(string(form.AmountPaid))
		if !ok {
			return Amounts{}, ErrInvalidAmountPaid
		}
		paid = parsed.Round(places)
	}

	pending := Pending(total, paid)
	if pending.IsNegative() {
		return Amounts{}, ErrNegativePendingAmount
	}

	return Amounts{
		Cost:          cost.Round(places),
		TotalAmount:   total,
		AmountPaid:    paid,
		PendingAmount: pending,
	}, nil
}

func parseRequired(raw string, invalid error) (decimal.Decimal, error) {
	value, ok := ParseAmount(raw)
	if !ok {
		return decimal.Zero, invalid
	}
	return value, nil
}

// TotalFromCost returns round2(cost * 1.18).
func TotalFromCost(cost decimal.Decimal) decimal.Decimal {
	return cost.Mul(TaxMultiplier).Round(places)
}

// Pending returns round2(total - paid). The result may be negative.
func Pending(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid).Round(places)
}

// ParseAmount parses a non-negative plain decimal no larger than MaxAmount.
// Empty, malformed, negative, exponent-form and out-of-range input report false.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxAmountLen || strings.ContainsAny(raw, "eE") {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() || value.Round(places).GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	return value, true
}

// Format renders an amount with two decimals.
func Format(value decimal.Decimal) string {
	return value.StringFixed(places)
}
