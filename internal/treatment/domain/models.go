package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Treatment is a service on the clinic's menu. Bills carry its name as text.
type Treatment struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"type:text;not null" json:"name"`
	Code            string          `gorm:"type:text;not null;uniqueIndex:ux_treatments_code" json:"code"`
	Category        string          `gorm:"type:text;not null;default:''" json:"category"`
	Description     string          `gorm:"type:text;not null;default:''" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	DurationMinutes int             `gorm:"not null;default:0" json:"duration_minutes"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Treatment) TableName() string { return "treatments" }
