package services

import (
	"errors"
	"fmt"

	"stayfinder-backend/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

// NewGuestService constructor for dependency injection.
func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func (s *GuestService) Create(guest *models.Guest) error {
	return s.DB.Create(guest).Error
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	return &guest, nil
}
