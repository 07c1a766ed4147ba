package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelops-backend/config"
	"hotelops-backend/models"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

// Room catalog endpoints. The booking engine reads room identity and price
// from here and flips Status on check-in/check-out.

func GetRooms(c *gin.Context) {
	var rooms []models.Room
	if err := config.DB.Preload("RoomType").Order("room_number ASC").Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomNumber is required")
		return
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if err := config.DB.Create(&room).Error; err != nil {
		utils.JSONError(c, http.StatusConflict, "room number already exists")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Only catalog fields may change here; booking state owns status during
	// an active stay.
	allowed := map[string]bool{"status": true, "price": true, "floor": true, "description": true, "type": true}
	updates := map[string]interface{}{}
	for k, v := range payload {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no updatable fields in payload")
		return
	}

	if err := config.DB.Model(&room).Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// RoomAvailability reports the nights currently held for a room inside an
// optional window (?from=YYYY-MM-DD&to=YYYY-MM-DD, default: next 90 days).
func RoomAvailability(availability *services.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid room id")
			return
		}

		from := utils.DateOnly(time.Now().UTC())
		to := from.AddDate(0, 0, 90)
		if s := c.Query("from"); s != "" {
			if from, err = utils.ParseStayDate(s); err != nil {
				utils.JSONError(c, http.StatusBadRequest, err.Error())
				return
			}
		}
		if s := c.Query("to"); s != "" {
			if to, err = utils.ParseStayDate(s); err != nil {
				utils.JSONError(c, http.StatusBadRequest, err.Error())
				return
			}
		}

		dates, err := availability.ReservedDates(uint(id), from, to)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load availability")
			return
		}

		reserved := make([]string, 0, len(dates))
		for _, d := range dates {
			reserved = append(reserved, d.Format(utils.DateLayout))
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{
			"room_id":        id,
			"from":           from.Format(utils.DateLayout),
			"to":             to.Format(utils.DateLayout),
			"reserved_dates": reserved,
		})
	}
}
