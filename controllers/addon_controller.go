package controllers

import (
	"log"
	"net/http"

	"stayfinder-backend/models"
	"stayfinder-backend/services"
	"stayfinder-backend/utils"

	"github.com/gin-gonic/gin"
)

type AddonController struct {
	AddonSvc *services.AddonService
}

func NewAddonController(svc *services.AddonService) *AddonController {
	return &AddonController{AddonSvc: svc}
}

// GetAddons (GET /api/addons)
func (ctrl *AddonController) GetAddons(c *gin.Context) {
	list, err := ctrl.AddonSvc.ListActive()
	if err != nil {
		log.Printf("❌ DB ERROR listing addons: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list addons")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateAddon (POST /api/addons)
func (ctrl *AddonController) CreateAddon(c *gin.Context) {
	var addon models.Addon
	if err := c.ShouldBindJSON(&addon); err != nil {
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	addon.Active = true

	if err := ctrl.AddonSvc.Create(&addon); err != nil {
		log.Printf("❌ DB ERROR creating addon: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create addon")
		return
	}
	c.JSON(http.StatusCreated, addon)
}
