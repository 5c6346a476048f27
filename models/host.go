package models

import (
	"gorm.io/gorm"
)

type Host struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Password string `json:"-"`
	Phone    string `gorm:"size:50" json:"phone,omitempty"`
}
