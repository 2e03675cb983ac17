package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
)

// Bill records a sold treatment package. Staff and doctor are referenced by
// display name, never by id.
type Bill struct {
	ID                snowflake.ID    `gorm:"primaryKey" json:"id"`
	Number            string          `gorm:"type:text;not null;uniqueIndex:ux_bills_number" json:"number"`
	ClientName        string          `gorm:"type:text;not null;index" json:"client_name"`
	AssignedStaff     string          `gorm:"type:text;not null;default:''" json:"assigned_staff"`
	HouseSale         bool            `gorm:"not null;default:false" json:"house_sale"`
	AssignedDoctor    string          `gorm:"type:text;not null;default:''" json:"assigned_doctor"`
	Service           string          `gorm:"type:text;not null" json:"service"`
	TotalSessions     int             `gorm:"not null;default:1" json:"total_sessions"`
	SessionsCompleted int             `gorm:"not null;default:0" json:"sessions_completed"`
	Cost              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	AmountPaid        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
	PendingAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pending_amount"`
	PaymentMethod     PaymentMethod   `gorm:"type:text;not null;default:'cash'" json:"payment_method"`
	Notes             string          `gorm:"type:text;not null;default:''" json:"notes"`
	Date              time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Bill) TableName() string { return "bills" }

// Attribution is who a bill's sale counts towards: a named staff member or
// the clinic itself.
type Attribution struct {
	Staff     string
	HouseSale bool
}

func StaffAttribution(name string) Attribution {
	return Attribution{Staff: name}
}

func HouseSaleAttribution() Attribution {
	return Attribution{HouseSale: true}
}

func (b Bill) Attribution() Attribution {
	if b.HouseSale {
		return HouseSaleAttribution()
	}
	return StaffAttribution(b.AssignedStaff)
}

// Label renders the attribution. houseLabel is the configured name for
// clinic sales.
func (a Attribution) Label(houseLabel string) string {
	if a.HouseSale {
		return houseLabel
	}
	return a.Staff
}
