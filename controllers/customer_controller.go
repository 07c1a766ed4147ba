package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelops-backend/config"
	"hotelops-backend/models"
	"hotelops-backend/utils"
)

// Customer endpoints back the user-directory collaborator: the booking
// engine only needs an owner reference to exist.

func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Order("id DESC").Find(&customers).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load customers")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customers)
}

func GetCustomerByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid customer id")
		return
	}
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "customer not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load customer")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customer)
}

func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(customer.FullName) == "" {
		utils.JSONError(c, http.StatusBadRequest, "fullName is required")
		return
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create customer")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, customer)
}
