package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property is a host-owned listing. TotalRooms is nullable on purpose:
// a listing without a positive room count has unbounded capacity.
type Property struct {
	gorm.Model

	HostID uint `gorm:"index;column:host_id" json:"host_id"`

	Title       string  `json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	City        string  `gorm:"size:100;index" json:"city"`
	NightlyRate float64 `gorm:"column:nightly_rate" json:"nightlyRate"`
	Currency    string  `gorm:"size:8;default:INR" json:"currency"`
	TotalRooms  *int    `gorm:"column:total_rooms" json:"totalRooms,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	Host Host `gorm:"foreignKey:HostID;references:ID" json:"host,omitempty"`
}
