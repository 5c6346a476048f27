package services

import (
	"errors"
	"fmt"
	"time"

	"stayfinder-backend/models"

	"gorm.io/gorm"
)

// UnlimitedRooms marks a property with no declared room count.
const UnlimitedRooms = -1

// AvailabilityResult is a tagged result: either the availability figures or
// an error kind, never both meaningful at once. Callers treat it as advisory
// UI state, so the checker degrades instead of failing the request.
type AvailabilityResult struct {
	IsAvailable        bool   `json:"isAvailable"`
	Unlimited          bool   `json:"unlimited"`
	RoomsAvailable     int    `json:"roomsAvailable"`
	TotalRooms         *int   `json:"totalRooms"`
	RoomsAlreadyBooked int    `json:"roomsAlreadyBooked"`
	ErrorKind          string `json:"error,omitempty"`

	Err error `json:"-"`
}

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// Overlaps reports whether the half-open intervals [ci,co) and [bci,bco)
// share at least one night. Touching boundaries (co == bci) do not overlap.
func Overlaps(ci, co, bci, bco time.Time) bool {
	return !(!co.After(bci) || !ci.Before(bco))
}

func unavailable(err error) AvailabilityResult {
	return AvailabilityResult{
		IsAvailable:    false,
		RoomsAvailable: 0,
		ErrorKind:      err.Error(),
		Err:            err,
	}
}

// CheckAvailability sums rooms already booked over every pending/confirmed
// booking whose interval overlaps the requested one, then compares the
// remainder against requestedRooms. This is a point-in-time estimate: no
// lock is taken, and two concurrent bookers can both read "available".
func (s *AvailabilityService) CheckAvailability(propertyID uint, checkIn, checkOut time.Time, requestedRooms int) AvailabilityResult {
	if propertyID == 0 {
		return unavailable(ErrMissingIdentity)
	}
	if !checkIn.Before(checkOut) {
		return unavailable(ErrInvalidDateRange)
	}
	if requestedRooms < 1 {
		requestedRooms = 1
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unavailable(ErrPropertyNotFound)
		}
		return unavailable(fmt.Errorf("failed to load property: %w", err))
	}

	booked, err := CountOverlappingRooms(s.DB, propertyID, checkIn, checkOut)
	if err != nil {
		return unavailable(fmt.Errorf("failed to load overlapping bookings: %w", err))
	}

	// No positive room count declared: capacity is unbounded.
	if property.TotalRooms == nil || *property.TotalRooms <= 0 {
		return AvailabilityResult{
			IsAvailable:        true,
			Unlimited:          true,
			RoomsAvailable:     UnlimitedRooms,
			TotalRooms:         nil,
			RoomsAlreadyBooked: booked,
		}
	}

	available := *property.TotalRooms - booked
	return AvailabilityResult{
		IsAvailable:        available >= requestedRooms,
		RoomsAvailable:     available,
		TotalRooms:         property.TotalRooms,
		RoomsAlreadyBooked: booked,
	}
}

// CountOverlappingRooms runs the overlap-exclusion query: bookings that end
// on or before check-in, or start on or after check-out, cannot collide with
// the requested interval. rooms_booked floors at 1 when unset.
func CountOverlappingRooms(db *gorm.DB, propertyID uint, checkIn, checkOut time.Time) (int, error) {
	var bookings []models.Booking
	err := db.Model(&models.Booking{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", []string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Where("NOT (check_out_date <= ? OR check_in_date >= ?)", checkIn, checkOut).
		Find(&bookings).Error
	if err != nil {
		return 0, err
	}

	total := 0
	for _, b := range bookings {
		rooms := b.RoomsBooked
		if rooms < 1 {
			rooms = 1
		}
		total += rooms
	}
	return total, nil
}
