package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"stayfinder-backend/models"
	"stayfinder-backend/services"
	"stayfinder-backend/utils"

	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	PropertySvc     *services.PropertyService
	AvailabilitySvc *services.AvailabilityService
}

func NewPropertyController(psvc *services.PropertyService, asvc *services.AvailabilityService) *PropertyController {
	return &PropertyController{PropertySvc: psvc, AvailabilitySvc: asvc}
}

// parseUintParam pulls a numeric :id out of the path.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetProperties (GET /api/properties?city=)
func (ctrl *PropertyController) GetProperties(c *gin.Context) {
	list, err := ctrl.PropertySvc.List(c.Query("city"))
	if err != nil {
		log.Printf("❌ DB ERROR listing properties: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetPropertyByID (GET /api/properties/:id)
func (ctrl *PropertyController) GetPropertyByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid property id")
		return
	}

	property, err := ctrl.PropertySvc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Property not found")
			return
		}
		log.Printf("❌ DB ERROR loading property %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty (POST /api/properties)
func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := ctrl.PropertySvc.Create(&property); err != nil {
		log.Printf("❌ DB ERROR creating property: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty (PUT/PATCH /api/properties/:id)
func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid property id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := ctrl.PropertySvc.Update(id, updates); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Property not found")
			return
		}
		log.Printf("❌ Update error for property %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Update failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}

// DeleteProperty (DELETE /api/properties/:id) — soft delete.
func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid property id")
		return
	}

	if err := ctrl.PropertySvc.Delete(id); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Property not found")
			return
		}
		log.Printf("❌ DB ERROR deleting property %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete property")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// CheckAvailability (GET /api/properties/:id/availability?check_in=&check_out=&rooms=)
//
// Availability is advisory UI state: malformed requests get a 400, an
// unknown property a 404, but data-access trouble still answers 200 with
// the degraded unavailable result.
func (ctrl *PropertyController) CheckAvailability(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid property id")
		return
	}

	checkIn, err := time.Parse("2006-01-02", c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_in date, expected YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_out date, expected YYYY-MM-DD")
		return
	}

	rooms := 1
	if raw := c.Query("rooms"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			rooms = n
		}
	}

	result := ctrl.AvailabilitySvc.CheckAvailability(id, checkIn, checkOut, rooms)
	switch {
	case errors.Is(result.Err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
	case errors.Is(result.Err, services.ErrPropertyNotFound):
		utils.JSONError(c, http.StatusNotFound, "Property not found")
	default:
		if result.Err != nil {
			log.Printf("⚠️ availability degraded for property %d: %v", id, result.Err)
		}
		c.JSON(http.StatusOK, result)
	}
}
