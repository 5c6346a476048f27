// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"stayfinder-backend/models"
	"stayfinder-backend/services"
	"stayfinder-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type AddonChoiceItem struct {
	AddonID     uint `json:"addon_id" binding:"required"`
	Quantity    int  `json:"quantity"`
	PersonCount int  `json:"personCount"`
}

type CreateBookingRequest struct {
	PropertyID uint              `json:"property_id" binding:"required"`
	GuestID    uint              `json:"guest_id" binding:"required"`
	CheckIn    string            `json:"check_in" binding:"required"`
	CheckOut   string            `json:"check_out" binding:"required"`
	Rooms      int               `json:"rooms"`
	Adults     int               `json:"adults"`
	Children   int               `json:"children"`
	Addons     []AddonChoiceItem `json:"addons,omitempty"`
}

type QuoteRequest struct {
	PropertyID uint              `json:"property_id" binding:"required"`
	CheckIn    string            `json:"check_in" binding:"required"`
	CheckOut   string            `json:"check_out" binding:"required"`
	Adults     int               `json:"adults"`
	Children   int               `json:"children"`
	Addons     []AddonChoiceItem `json:"addons,omitempty"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func toAddonChoices(items []AddonChoiceItem) []services.AddonChoice {
	choices := make([]services.AddonChoice, 0, len(items))
	for _, it := range items {
		choices = append(choices, services.AddonChoice{
			AddonID:     it.AddonID,
			Quantity:    it.Quantity,
			PersonCount: it.PersonCount,
		})
	}
	return choices
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		PropertyID: req.PropertyID,
		GuestID:    req.GuestID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Rooms:      req.Rooms,
		Adults:     req.Adults,
		Children:   req.Children,
		Addons:     toAddonChoices(req.Addons),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange), errors.Is(err, services.ErrMissingIdentity):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrPropertyNotFound), errors.Is(err, services.ErrGuestNotFound):
			utils.JSONError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrRoomsUnavailable):
			utils.JSONError(c, http.StatusConflict, "Not enough rooms available for the selected dates")
		default:
			log.Printf("❌ DB ERROR creating booking: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookingDetails (GET /api/bookings/:id)
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	booking, err := ctrl.BookingSvc.GetBookingDetails(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("❌ DB ERROR loading booking %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookings (GET /api/bookings?guest_id=)
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	guestID, err := strconv.ParseUint(c.Query("guest_id"), 10, 64)
	if err != nil || guestID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "guest_id query parameter is required")
		return
	}

	list, err := ctrl.BookingSvc.ListByGuest(uint(guestID))
	if err != nil {
		log.Printf("❌ DB ERROR listing bookings for guest %d: %v", guestID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ConfirmBooking (PATCH /api/bookings/:id/confirm)
func (ctrl *BookingController) ConfirmBooking(c *gin.Context) {
	ctrl.applyTransition(c, ctrl.BookingSvc.ConfirmBooking)
}

// CancelBooking (PATCH /api/bookings/:id/cancel) — status change, no delete.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	ctrl.applyTransition(c, ctrl.BookingSvc.CancelBooking)
}

func (ctrl *BookingController) applyTransition(c *gin.Context, fn func(uint) (*models.Booking, error)) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	booking, err := fn(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, services.ErrBookingCancelled):
			utils.JSONError(c, http.StatusConflict, "Booking is cancelled and cannot change status")
		default:
			log.Printf("❌ DB ERROR transitioning booking %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update booking")
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

// QuoteBooking (POST /api/pricing/quote) prices a prospective stay so the
// client can render the amount before checkout.
func (ctrl *BookingController) QuoteBooking(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	quote, err := ctrl.BookingSvc.BuildQuote(
		req.PropertyID,
		req.CheckIn,
		req.CheckOut,
		toAddonChoices(req.Addons),
		services.GuestCounts{Adults: req.Adults, Children: req.Children},
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.JSONError(c, http.StatusNotFound, "Property not found")
		default:
			log.Printf("❌ DB ERROR building quote: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to build quote")
		}
		return
	}
	c.JSON(http.StatusOK, quote)
}
