package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
)

// BranchTarget is a clinic-wide sales goal. The most recently created one is
// the active goal on the dashboard.
type BranchTarget struct {
	ID        snowflake.ID        `gorm:"primaryKey" json:"id"`
	Amount    decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"amount"`
	Period    targetdomain.Period `gorm:"type:text;not null" json:"period"`
	DateSet   time.Time           `gorm:"not null" json:"date_set"`
	Notes     string              `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BranchTarget) TableName() string { return "branch_targets" }
