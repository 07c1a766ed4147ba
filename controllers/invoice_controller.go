package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelops-backend/config"
	"hotelops-backend/models"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type InvoiceController struct {
	InvoiceSvc *services.InvoiceService
}

func NewInvoiceController(svc *services.InvoiceService) *InvoiceController {
	return &InvoiceController{InvoiceSvc: svc}
}

// GetInvoicesByBooking lists a reservation's invoices (proforma first).
func (ctrl *InvoiceController) GetInvoicesByBooking(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	invoices, err := ctrl.InvoiceSvc.ListByReservation(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load invoices")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoices)
}

// GetInvoice returns a single invoice with its decoded line items.
func (ctrl *InvoiceController) GetInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "invoice not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load invoice")
		return
	}

	lines, err := invoice.DecodeLines()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to decode invoice lines")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"invoice": invoice,
		"lines":   lines,
	})
}
