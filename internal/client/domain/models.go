package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
)

// Client is a customer of the clinic.
type Client struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null;index" json:"name"`
	Phone     string            `gorm:"type:text;not null;index" json:"phone"`
	Email     string            `gorm:"type:text;not null;default:''" json:"email"`
	Gender    Gender            `gorm:"type:text;not null;default:''" json:"gender"`
	Address   string            `gorm:"type:text;not null;default:''" json:"address"`
	Notes     string            `gorm:"type:text;not null;default:''" json:"notes"`
	Metadata  datatypes.JSONMap `gorm:"not null" json:"metadata"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
