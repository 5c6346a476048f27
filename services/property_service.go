package services

import (
	"errors"
	"fmt"
	"strings"

	"stayfinder-backend/models"

	"gorm.io/gorm"
)

type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

func (s *PropertyService) Create(property *models.Property) error {
	property.Title = strings.TrimSpace(property.Title)
	if property.Title == "" {
		return fmt.Errorf("validation: title is required")
	}
	if property.NightlyRate < 0 {
		return fmt.Errorf("validation: nightly rate cannot be negative")
	}
	if property.Currency == "" {
		property.Currency = "INR"
	}
	return s.DB.Create(property).Error
}

func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.Preload("Host").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return &property, nil
}

// List returns listings, optionally narrowed to one city. Anything richer
// (amenity filters, geo search) is out of scope here.
func (s *PropertyService) List(city string) ([]models.Property, error) {
	var list []models.Property
	q := s.DB.Order("created_at DESC")
	if city = strings.TrimSpace(city); city != "" {
		q = q.Where("city = ?", city)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return list, nil
}

func (s *PropertyService) Update(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	res := s.DB.Model(&models.Property{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (s *PropertyService) Delete(id uint) error {
	res := s.DB.Delete(&models.Property{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
