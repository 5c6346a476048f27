package models

import (
	"gorm.io/gorm"
)

// Addon is a bookable extra. PerDay add-ons recur every night of the stay;
// PerPerson add-ons multiply by the selected person count.
type Addon struct {
	gorm.Model

	Name        string  `gorm:"size:150" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `json:"price"`
	PerPerson   bool    `gorm:"column:per_person;default:false" json:"perPerson"`
	PerDay      bool    `gorm:"column:per_day;default:false" json:"perDay"`
	Active      bool    `gorm:"default:true" json:"active"`
}
