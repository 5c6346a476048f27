package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is one payment attempt. BookingID may be nil at creation and
// attached later; TransactionID stays nil until the gateway assigns one.
// Once set, webhook reconciliation looks rows up by transaction id, never
// by the local primary key.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID *uint `gorm:"index;column:booking_id" json:"booking_id,omitempty"`

	// Amount in minor currency units (paise), the unit the gateway speaks.
	Amount   int64  `gorm:"column:amount" json:"amount"`
	Currency string `gorm:"size:8;default:INR" json:"currency"`
	Status   string `gorm:"column:status;size:32;default:pending" json:"status"`
	Method   string `gorm:"size:32" json:"method,omitempty"`
	Gateway  string `gorm:"size:32" json:"gateway,omitempty"`

	TransactionID *string `gorm:"column:transaction_id;size:64;uniqueIndex" json:"transaction_id,omitempty"`
	ReceiptID     string  `gorm:"column:receipt_id;size:64" json:"receipt_id,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}

// Terminal reports whether the payment reached a final state. Terminal
// statuses are never reverted; duplicate gateway events re-apply them.
func (p *Payment) Terminal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}
