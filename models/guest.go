package models

import (
	"gorm.io/gorm"
)

type Guest struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `gorm:"size:150;index" json:"email"`
	Phone    string `gorm:"size:50" json:"phone,omitempty"`
}
