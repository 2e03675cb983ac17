package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type AssigneeKind string

const (
	AssigneeStaff  AssigneeKind = "staff"
	AssigneeDoctor AssigneeKind = "doctor"
)

func ParseAssigneeKind(value string) (AssigneeKind, error) {
	switch AssigneeKind(value) {
	case AssigneeStaff, AssigneeDoctor:
		return AssigneeKind(value), nil
	default:
		return "", ErrInvalidAssigneeKind
	}
}

// Period is the cadence a sales target is meant for. It is informational for
// personal targets and drives the progress window for branch targets.
type Period string

const (
	PeriodDaily      Period = "daily"
	PeriodWeekly     Period = "weekly"
	PeriodMonthly    Period = "monthly"
	PeriodQuarterly  Period = "quarterly"
	PeriodHalfYearly Period = "half-yearly"
	PeriodYearly     Period = "yearly"
)

// ParsePeriod defaults an empty value to monthly.
func ParsePeriod(value string) (Period, error) {
	if value == "" {
		return PeriodMonthly, nil
	}
	switch Period(value) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodHalfYearly, PeriodYearly:
		return Period(value), nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Target is a sales goal for one staff member or doctor.
type Target struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	AssigneeKind AssigneeKind    `gorm:"type:text;not null;index:idx_targets_assignee,priority:1" json:"assignee_kind"`
	AssigneeID   snowflake.ID    `gorm:"not null;index:idx_targets_assignee,priority:2" json:"assignee_id"`
	AssigneeName string          `gorm:"-" json:"assignee_name"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	Period       Period          `gorm:"type:text;not null" json:"period"`
	Notes        string          `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Target) TableName() string { return "targets" }
