package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hotelops-backend/services"
)

func callRespondServiceError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondServiceError(c, err)

	var body struct {
		Error map[string]interface{} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body.Error
}

func TestRespondServiceError(t *testing.T) {
	conflict := &services.ConflictError{
		RoomID:        3,
		ReservationID: 42,
		CheckIn:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Field: "check_out", Reason: "must be after check_in"}, http.StatusBadRequest, "error.validation"},
		{"conflict with detail", conflict, http.StatusConflict, "error.roomUnavailable"},
		{"bare room conflict", services.ErrRoomUnavailable, http.StatusConflict, "error.roomUnavailable"},
		{"duplicate request", services.ErrDuplicateRequest, http.StatusConflict, "error.duplicateRequest"},
		{"wrapped duplicate request", fmt.Errorf("create booking: %w", services.ErrDuplicateRequest), http.StatusConflict, "error.duplicateRequest"},
		{"outstanding balance", &services.BalanceError{Payable: 170, Paying: 100}, http.StatusBadRequest, "error.outstandingBalance"},
		{"invalid state", fmt.Errorf("%w: cannot check out while Confirmed", services.ErrInvalidState), http.StatusBadRequest, "error.invalidState"},
		{"booking not found", services.ErrNotFound, http.StatusNotFound, "error.bookingNotFound"},
		{"room not found", services.ErrRoomNotFound, http.StatusNotFound, "error.roomNotFound"},
		{"customer not found", services.ErrCustomerNotFound, http.StatusNotFound, "error.customerNotFound"},
		{"infrastructure fault", errors.New("db connection lost"), http.StatusInternalServerError, "error.internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, errBody := callRespondServiceError(t, tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if errBody["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", errBody["code"], tt.wantCode)
			}
		})
	}
}

// A reused idempotency key that loses the race past the pre-check must not
// surface as a 500; it is a conflict the caller can resolve.
func TestDuplicateRequestIsNeverInternal(t *testing.T) {
	status, errBody := callRespondServiceError(t, services.ErrDuplicateRequest)
	if status == http.StatusInternalServerError {
		t.Fatal("duplicate request must not map to 500")
	}
	if status != http.StatusConflict || errBody["code"] != "error.duplicateRequest" {
		t.Errorf("got status %d code %v", status, errBody["code"])
	}
}

func TestConflictResponseCarriesDates(t *testing.T) {
	conflict := &services.ConflictError{
		RoomID:        3,
		ReservationID: 42,
		CheckIn:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
	}
	_, errBody := callRespondServiceError(t, conflict)
	if errBody["conflict_check_in"] != "2026-09-01" || errBody["conflict_check_out"] != "2026-09-04" {
		t.Errorf("conflict dates missing from body: %v", errBody)
	}
}
