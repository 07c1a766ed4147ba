package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	mysql "github.com/go-sql-driver/mysql"
)

func TestConflictErrorMatching(t *testing.T) {
	conflict := &ConflictError{
		RoomID:        3,
		ReservationID: 42,
		CheckIn:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
	}
	if !errors.Is(conflict, ErrRoomUnavailable) {
		t.Error("ConflictError must match ErrRoomUnavailable")
	}

	// Survives wrapping.
	wrapped := fmt.Errorf("create failed: %w", conflict)
	if !errors.Is(wrapped, ErrRoomUnavailable) {
		t.Error("wrapped ConflictError must still match")
	}
	var got *ConflictError
	if !errors.As(wrapped, &got) || got.ReservationID != 42 {
		t.Error("errors.As must recover the conflict detail")
	}
}

func TestValidationErrorMatching(t *testing.T) {
	vErr := &ValidationError{Field: "check_out", Reason: "must be after check_in"}
	if !errors.Is(vErr, ErrValidation) {
		t.Error("ValidationError must match ErrValidation")
	}
	if vErr.Error() != "validation: check_out must be after check_in" {
		t.Errorf("unexpected message: %s", vErr.Error())
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	if !isDuplicateKeyError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Error("1062 must be detected as a duplicate key error")
	}
	if isDuplicateKeyError(&mysql.MySQLError{Number: 1452, Message: "FK violation"}) {
		t.Error("1452 is not a duplicate key error")
	}
	if isDuplicateKeyError(nil) {
		t.Error("nil is not an error")
	}
	if isDuplicateKeyError(errors.New("some other failure")) {
		t.Error("plain errors are not duplicate key errors")
	}

	wrapped := fmt.Errorf("insert hold: %w", &mysql.MySQLError{Number: 1062})
	if !isDuplicateKeyError(wrapped) {
		t.Error("wrapped 1062 must be detected")
	}
}
