package controllers

import (
	"errors"
	"log"
	"net/http"

	"stayfinder-backend/models"
	"stayfinder-backend/services"
	"stayfinder-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

// CreateGuest (POST /api/guests)
func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid guest payload", err.Error())
		return
	}

	if err := ctrl.GuestSvc.Create(&guest); err != nil {
		log.Printf("❌ DB ERROR during guest creation: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create guest")
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// GetGuestByID (GET /api/guests/:id)
func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid guest id")
		return
	}

	guest, err := ctrl.GuestSvc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Guest not found")
			return
		}
		log.Printf("❌ DB ERROR loading guest %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load guest")
		return
	}
	c.JSON(http.StatusOK, guest)
}
