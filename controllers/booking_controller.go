// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelops-backend/models"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	CustomerID     uint    `json:"customer_id" binding:"required"`
	RoomID         uint    `json:"room_id" binding:"required"`
	RoomType       string  `json:"room_type"`
	CheckIn        string  `json:"check_in" binding:"required"`
	CheckOut       string  `json:"check_out" binding:"required"`
	TotalPrice     float64 `json:"total_price" binding:"required"`
	AdvanceAmount  float64 `json:"advance_amount"`
	IdempotencyKey string  `json:"idempotency_key"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CheckInRequest struct {
	AssignedRoomNumber string  `json:"assigned_room_number"`
	DepositAmount      float64 `json:"deposit_amount"`
}

type AddChargeRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

type CheckOutRequest struct {
	PaymentMethod string  `json:"payment_method"`
	PaidAmount    float64 `json:"paid_amount"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
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

// ---------------------------
// Helpers
// ---------------------------

func parseReservationID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidBookingId",
			"booking id must be a positive integer", nil)
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps the engine's error taxonomy onto the HTTP
// contract: validation and state-precondition errors are 400, conflicts are
// 409, missing records are 404, and anything else is an infrastructure
// fault reported as 500 (safe to retry, nothing was committed).
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", vErr.Error(), gin.H{
			"field":  vErr.Field,
			"reason": vErr.Reason,
		})
		return
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		utils.JSONErrorCode(c, http.StatusConflict, "error.roomUnavailable",
			"room is already reserved for the requested dates", gin.H{
				"conflict_check_in":  conflict.CheckIn.Format(utils.DateLayout),
				"conflict_check_out": conflict.CheckOut.Format(utils.DateLayout),
			})
		return
	}
	if errors.Is(err, services.ErrRoomUnavailable) {
		utils.JSONErrorCode(c, http.StatusConflict, "error.roomUnavailable",
			"room is already reserved for the requested dates", nil)
		return
	}
	if errors.Is(err, services.ErrDuplicateRequest) {
		utils.JSONErrorCode(c, http.StatusConflict, "error.duplicateRequest",
			"this idempotency key was already used for a booking", nil)
		return
	}

	var balance *services.BalanceError
	if errors.As(err, &balance) {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.outstandingBalance",
			"payment does not cover the outstanding balance", gin.H{
				"payable":   balance.Payable,
				"paying":    balance.Paying,
				"shortfall": balance.Shortfall(),
			})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrInvalidPaymentState),
		errors.Is(err, services.ErrIncompleteCheckout):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidState", err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found", nil)
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.roomNotFound", "room not found", nil)
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.customerNotFound", "customer not found", nil)
	default:
		log.Printf("booking operation failed: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal",
			"operation failed, no changes were saved", nil)
	}
}

// ---------------------------
// 1) Create Booking
// ---------------------------
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.badRequest", err.Error(), nil)
		return
	}

	checkIn, err := utils.ParseStayDate(req.CheckIn)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", err.Error(), gin.H{"field": "check_in"})
		return
	}
	checkOut, err := utils.ParseStayDate(req.CheckOut)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", err.Error(), gin.H{"field": "check_out"})
		return
	}

	reservation, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		CustomerID:     req.CustomerID,
		RoomID:         req.RoomID,
		RoomType:       req.RoomType,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		TotalPrice:     req.TotalPrice,
		AdvanceAmount:  req.AdvanceAmount,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		// A reused idempotency key returns the reservation the first attempt
		// created; report it as a plain 200 so retries are harmless.
		if errors.Is(err, services.ErrDuplicateRequest) && reservation != nil {
			utils.JSONSuccess(c, http.StatusOK, reservation)
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// ---------------------------
// 2) Approve / Reject
// ---------------------------
func (ctrl *BookingController) ApproveBooking(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	reservation, err := ctrl.BookingSvc.Approve(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.badRequest", err.Error(), nil)
		return
	}
	reservation, err := ctrl.BookingSvc.Reject(id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// ---------------------------
// 3) Check-in
// ---------------------------
func (ctrl *BookingController) CheckInBooking(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.badRequest", err.Error(), nil)
		return
	}
	reservation, err := ctrl.BookingSvc.CheckIn(id, req.AssignedRoomNumber, req.DepositAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Check-in slip summary for the front desk.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
		"slip": gin.H{
			"guest":       reservation.Customer.FullName,
			"room_number": reservation.AssignedRoomNumber,
			"nights":      reservation.Nights,
			"check_in":    reservation.CheckIn.Format(utils.DateLayout),
			"check_out":   reservation.CheckOut.Format(utils.DateLayout),
		},
	})
}

// ---------------------------
// 4) Ad-hoc charges
// ---------------------------
func (ctrl *BookingController) AddCharge(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	var req AddChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.badRequest", err.Error(), nil)
		return
	}
	charges, err := ctrl.BookingSvc.AddCharge(id, req.Description, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, charges)
}

// ---------------------------
// 5) Check-out
// ---------------------------
func (ctrl *BookingController) CheckOutBooking(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.badRequest", err.Error(), nil)
		return
	}
	result, err := ctrl.BookingSvc.CheckOut(id, req.PaymentMethod, req.PaidAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// ---------------------------
// 6) Cancel
// ---------------------------
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	var req CancelRequest
	_ = c.ShouldBindJSON(&req) // reason is optional
	reservation, err := ctrl.BookingSvc.Cancel(id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// ---------------------------
// 7) Reads
// ---------------------------
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.ListBookings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	reservation, err := ctrl.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctrl *BookingController) GetAuditTrail(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	trail, err := services.AuditTrail(ctrl.BookingSvc.DB, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, trail)
}

// GetCharges lists the charges recorded for a reservation.
func (ctrl *BookingController) GetCharges(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	reservation, err := ctrl.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	charges := reservation.Charges
	if charges == nil {
		charges = []models.Charge{}
	}
	utils.JSONSuccess(c, http.StatusOK, charges)
}
