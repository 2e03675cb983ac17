package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Doctor is a practitioner that bills and targets can be attributed to.
type Doctor struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"type:text;not null;index" json:"name"`
	Specialty       string       `gorm:"type:text;not null" json:"specialty"`
	Phone           string       `gorm:"type:text;not null;default:''" json:"phone"`
	Email           string       `gorm:"type:text;not null;default:''" json:"email"`
	Qualification   string       `gorm:"type:text;not null;default:''" json:"qualification"`
	ExperienceYears int          `gorm:"not null;default:0" json:"experience_years"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Doctor) TableName() string { return "doctors" }
