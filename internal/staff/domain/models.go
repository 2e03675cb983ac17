package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Staff is a front-desk or therapy team member. Bills name them by their display name.
type Staff struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"type:text;not null;index" json:"name"`
	Role            string       `gorm:"type:text;not null" json:"role"`
	Phone           string       `gorm:"type:text;not null;default:''" json:"phone"`
	Email           string       `gorm:"type:text;not null;default:''" json:"email"`
	Qualification   string       `gorm:"type:text;not null;default:''" json:"qualification"`
	ExperienceYears int          `gorm:"not null;default:0" json:"experience_years"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }
