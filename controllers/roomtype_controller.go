package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelops-backend/config"
	"hotelops-backend/models"
	"hotelops-backend/utils"
)

func GetRoomTypes(c *gin.Context) {
	var types []models.RoomType
	if err := config.DB.Find(&types).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room types")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if rt.TypeName == "" {
		utils.JSONError(c, http.StatusBadRequest, "typeName is required")
		return
	}
	if err := config.DB.Create(&rt).Error; err != nil {
		utils.JSONError(c, http.StatusConflict, "room type already exists")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func DeleteRoomType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}
	if err := config.DB.Delete(&models.RoomType{}, id).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room type")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
