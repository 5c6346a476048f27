package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents one reserved stay. The date interval is half-open:
// check-in inclusive, check-out exclusive, so back-to-back stays on the
// same day do not collide.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`
	GuestID    uint `gorm:"index;column:guest_id" json:"guest_id"`

	ReferenceCode string     `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`
	Status        string     `gorm:"column:status;size:32;default:pending" json:"status"`
	CheckInDate   *time.Time `gorm:"column:check_in_date" json:"check_in_date,omitempty"`
	CheckOutDate  *time.Time `gorm:"column:check_out_date" json:"check_out_date,omitempty"`
	Nights        int        `gorm:"column:nights" json:"nights,omitempty"`
	RoomsBooked   int        `gorm:"column:rooms_booked;default:1" json:"rooms_booked"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`
	Currency    string  `gorm:"size:8;default:INR" json:"currency"`

	// Quote figures as shown to the guest at booking time, kept verbatim
	// so later rate or tax changes never alter a historical booking.
	QuoteSnapshot datatypes.JSON `gorm:"column:quote_snapshot" json:"quoteSnapshot,omitempty"`

	Property Property       `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
	Guest    Guest          `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Addons   []BookingAddon `gorm:"foreignKey:BookingID" json:"addons"`
}
