package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Appointment books a client into a treatment slot.
type Appointment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientName  string       `gorm:"type:text;not null" json:"client_name"`
	Phone       string       `gorm:"type:text;not null;default:''" json:"phone"`
	Treatment   string       `gorm:"type:text;not null" json:"treatment"`
	DoctorName  string       `gorm:"type:text;not null;default:''" json:"doctor_name"`
	StaffName   string       `gorm:"type:text;not null;default:''" json:"staff_name"`
	ScheduledAt time.Time    `gorm:"not null;index" json:"scheduled_at"`
	Status      Status       `gorm:"type:text;not null;default:'scheduled'" json:"status"`
	Notes       string       `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }
