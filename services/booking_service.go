package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"stayfinder-backend/models"
	"stayfinder-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService wraps *gorm.DB with the booking lifecycle logic.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// AddonChoice is a guest's selection of one add-on by id.
type AddonChoice struct {
	AddonID     uint `json:"addon_id"`
	Quantity    int  `json:"quantity"`
	PersonCount int  `json:"personCount"`
}

type CreateBookingInput struct {
	PropertyID uint
	GuestID    uint
	CheckIn    string
	CheckOut   string
	Rooms      int
	Adults     int
	Children   int
	Addons     []AddonChoice
}

// ParseStayDates accepts date-only or RFC3339 timestamps and normalizes both
// to midnight, keeping the half-open interval semantics intact.
func ParseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	parse := func(raw string) (time.Time, error) {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t, nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
	}

	ci, err := parse(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid check_in format: %w", err)
	}
	co, err := parse(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid check_out format: %w", err)
	}
	if !ci.Before(co) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return ci, co, nil
}

// resolveAddonSelections loads the chosen add-ons and freezes their current
// price and flags into selections for the calculator.
func (s *BookingService) resolveAddonSelections(choices []AddonChoice) ([]AddonSelection, []models.Addon, error) {
	if len(choices) == 0 {
		return nil, nil, nil
	}

	ids := make([]uint, 0, len(choices))
	for _, ch := range choices {
		if ch.AddonID != 0 {
			ids = append(ids, ch.AddonID)
		}
	}

	var addons []models.Addon
	if err := s.DB.Where("id IN ? AND active = ?", ids, true).Find(&addons).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load addons: %w", err)
	}
	byID := make(map[uint]models.Addon, len(addons))
	for _, a := range addons {
		byID[a.ID] = a
	}

	selections := make([]AddonSelection, 0, len(choices))
	resolved := make([]models.Addon, 0, len(choices))
	for _, ch := range choices {
		addon, ok := byID[ch.AddonID]
		if !ok {
			// Unknown or inactive add-ons are skipped, not fatal.
			log.Printf("⚠️ addon %d not found or inactive, skipping", ch.AddonID)
			continue
		}
		selections = append(selections, AddonSelection{
			Name:        addon.Name,
			Price:       addon.Price,
			Quantity:    ch.Quantity,
			PerDay:      addon.PerDay,
			PerPerson:   addon.PerPerson,
			PersonCount: ch.PersonCount,
		})
		resolved = append(resolved, addon)
	}
	return selections, resolved, nil
}

// BuildQuote prices a prospective stay without writing anything. The same
// path backs the public quote endpoint and the booking-create snapshot.
func (s *BookingService) BuildQuote(propertyID uint, checkIn, checkOut string, choices []AddonChoice, guests GuestCounts) (Quote, error) {
	ci, co, err := ParseStayDates(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Quote{}, ErrPropertyNotFound
		}
		return Quote{}, fmt.Errorf("failed to load property: %w", err)
	}

	selections, _, err := s.resolveAddonSelections(choices)
	if err != nil {
		return Quote{}, err
	}

	nights := int(co.Sub(ci).Hours() / 24)
	return ComputeQuote(property.NightlyRate, nights, selections, guests), nil
}

// CreateBooking validates the request, re-checks availability inside the
// write transaction and creates a pending booking with line items and a
// frozen quote snapshot. The re-check narrows the check-then-act race but
// does not close it; that gap is accepted.
func (s *BookingService) CreateBooking(input CreateBookingInput) (models.Booking, error) {
	var result models.Booking

	if input.PropertyID == 0 || input.GuestID == 0 {
		return result, ErrMissingIdentity
	}

	ci, co, err := ParseStayDates(input.CheckIn, input.CheckOut)
	if err != nil {
		return result, err
	}

	rooms := input.Rooms
	if rooms < 1 {
		rooms = 1
	}
	adults := input.Adults
	if adults < 1 {
		adults = 1
	}
	children := input.Children
	if children < 0 {
		children = 0
	}

	var property models.Property
	if err := s.DB.First(&property, input.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, ErrPropertyNotFound
		}
		return result, fmt.Errorf("failed to load property: %w", err)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, input.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, ErrGuestNotFound
		}
		return result, fmt.Errorf("failed to load guest: %w", err)
	}

	selections, addons, err := s.resolveAddonSelections(input.Addons)
	if err != nil {
		return result, err
	}

	nights := int(co.Sub(ci).Hours() / 24)
	guests := GuestCounts{Adults: adults, Children: children}
	quote := ComputeQuote(property.NightlyRate, nights, selections, guests)
	quoteJSON, _ := json.Marshal(quote) // best-effort

	refCode, err := utils.GenerateReferenceCode("SF", 8)
	if err != nil {
		return result, fmt.Errorf("failed to generate reference code: %w", err)
	}

	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if property.TotalRooms != nil && *property.TotalRooms > 0 {
			booked, err := CountOverlappingRooms(tx, input.PropertyID, ci, co)
			if err != nil {
				return fmt.Errorf("failed to re-check availability: %w", err)
			}
			if *property.TotalRooms-booked < rooms {
				return ErrRoomsUnavailable
			}
		}

		booking := models.Booking{
			PropertyID:    input.PropertyID,
			GuestID:       input.GuestID,
			ReferenceCode: refCode,
			Status:        models.BookingStatusPending,
			CheckInDate:   &ci,
			CheckOutDate:  &co,
			Nights:        quote.Nights,
			RoomsBooked:   rooms,
			Adults:        adults,
			Children:      children,
			TotalAmount:   quote.BookingTotal,
			Currency:      property.Currency,
			QuoteSnapshot: datatypes.JSON(quoteJSON),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		bookingID = booking.ID

		safeNights := SafeNights(nights)
		for i, sel := range selections {
			line := models.BookingAddon{
				BookingID:   booking.ID,
				AddonID:     addons[i].ID,
				Quantity:    sel.Quantity,
				PersonCount: sel.PersonCount,
				UnitPrice:   sel.Price,
				LineTotal:   AddonAmount(sel, safeNights, guests.Total()),
			}
			if line.Quantity < 1 {
				line.Quantity = 1
			}
			if line.PersonCount < 1 {
				line.PersonCount = 1
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("failed to create booking addon line: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return result, txErr
	}

	if err := s.DB.
		Preload("Property").
		Preload("Guest").
		Preload("Addons").
		Preload("Addons.Addon").
		First(&result, bookingID).Error; err != nil {
		return result, err
	}
	if result.Addons == nil {
		result.Addons = []models.BookingAddon{}
	}
	return result, nil
}

func (s *BookingService) GetBookingDetails(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.
		Preload("Property").
		Preload("Guest").
		Preload("Addons").
		Preload("Addons.Addon").
		First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) ListByGuest(guestID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Property").
		Preload("Addons").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	for i := range list {
		if list[i].Addons == nil {
			list[i].Addons = []models.BookingAddon{}
		}
	}
	return list, nil
}

// ConfirmBooking moves a pending booking to confirmed. Confirming an
// already-confirmed booking is a no-op; a cancelled one cannot come back.
func (s *BookingService) ConfirmBooking(bookingID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusConfirmed)
}

// CancelBooking is a status change, never a hard delete. Cancelling twice
// is a no-op.
func (s *BookingService) CancelBooking(bookingID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusCancelled)
}

func (s *BookingService) transition(bookingID uint, target string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status == target {
			return nil
		}
		if booking.Status == models.BookingStatusCancelled {
			return ErrBookingCancelled
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status": target,
		}).Error; err != nil {
			return err
		}
		booking.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
