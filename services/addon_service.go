package services

import (
	"fmt"
	"strings"

	"stayfinder-backend/models"

	"gorm.io/gorm"
)

type AddonService struct {
	DB *gorm.DB
}

func NewAddonService(db *gorm.DB) *AddonService {
	return &AddonService{DB: db}
}

func (s *AddonService) ListActive() ([]models.Addon, error) {
	var list []models.Addon
	if err := s.DB.Where("active = ?", true).Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list addons: %w", err)
	}
	return list, nil
}

func (s *AddonService) Create(addon *models.Addon) error {
	addon.Name = strings.TrimSpace(addon.Name)
	if addon.Name == "" {
		return fmt.Errorf("validation: name is required")
	}
	if addon.Price < 0 {
		return fmt.Errorf("validation: price cannot be negative")
	}
	return s.DB.Create(addon).Error
}
