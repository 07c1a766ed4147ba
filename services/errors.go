package services

import (
	"errors"
	"fmt"
	"time"

	mysql "github.com/go-sql-driver/mysql"
)

// Business errors. Controllers dispatch on these with errors.Is/errors.As;
// anything not matching is treated as an infrastructure fault.
var (
	ErrNotFound            = errors.New("booking_not_found")
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrCustomerNotFound    = errors.New("customer_not_found")
	ErrInvalidState        = errors.New("invalid_state")
	ErrInvalidPaymentState = errors.New("invalid_payment_state")
	ErrRoomUnavailable     = errors.New("room_unavailable")
	ErrDuplicateRequest    = errors.New("duplicate_request")
	ErrOutstandingBalance  = errors.New("outstanding_balance")
	ErrIncompleteCheckout  = errors.New("incomplete_checkout")
	ErrValidation          = errors.New("validation")
)

// ConflictError reports a room/date-range conflict with enough detail for a
// user-facing message. Matches ErrRoomUnavailable under errors.Is.
type ConflictError struct {
	RoomID        uint
	ReservationID uint
	CheckIn       time.Time
	CheckOut      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room_unavailable: room %d already reserved %s to %s (reservation %d)",
		e.RoomID, e.CheckIn.Format("2006-01-02"), e.CheckOut.Format("2006-01-02"), e.ReservationID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrRoomUnavailable }

// BalanceError reports the shortfall that blocked a checkout. Matches
// ErrOutstandingBalance under errors.Is.
type BalanceError struct {
	Payable float64
	Paying  float64
}

func (e *BalanceError) Shortfall() float64 { return e.Payable - e.Paying }

func (e *BalanceError) Error() string {
	return fmt.Sprintf("outstanding_balance: payable %.2f, paying %.2f, short %.2f",
		e.Payable, e.Paying, e.Shortfall())
}

func (e *BalanceError) Is(target error) bool { return target == ErrOutstandingBalance }

// ValidationError carries field-level detail for a rejected request.
// Matches ErrValidation under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// isDuplicateKeyError detects a MySQL unique-constraint violation (1062).
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	return false
}
