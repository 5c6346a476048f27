package models

import (
	"gorm.io/gorm"
)

// BookingAddon is one selected add-on line on a booking, with the price
// and computed line total frozen at booking time.
type BookingAddon struct {
	gorm.Model

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	AddonID   uint `gorm:"index;column:addon_id" json:"addon_id"`

	Quantity    int     `gorm:"column:quantity;default:1" json:"quantity"`
	PersonCount int     `gorm:"column:person_count;default:1" json:"personCount"`
	UnitPrice   float64 `gorm:"column:unit_price" json:"unitPrice"`
	LineTotal   float64 `gorm:"column:line_total" json:"lineTotal"`

	Addon Addon `gorm:"foreignKey:AddonID;references:ID" json:"addon,omitempty"`
}
