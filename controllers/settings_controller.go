package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/config"
	"hotelops-backend/models"
	"hotelops-backend/utils"
)

func GetHotelSettings(c *gin.Context) {
	var setting models.HotelSetting
	if err := config.DB.First(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel settings not configured")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

func UpdateHotelSettings(c *gin.Context) {
	var setting models.HotelSetting
	if err := config.DB.First(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel settings not configured")
		return
	}

	var payload models.HotelSetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":    payload.Name,
		"address": payload.Address,
		"phone":   payload.Phone,
		"email":   payload.Email,
		"website": payload.Website,
	}
	if payload.TaxRate > 0 {
		updates["tax_rate"] = payload.TaxRate
	}

	if err := config.DB.Model(&setting).Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
