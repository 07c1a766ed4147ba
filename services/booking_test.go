package services

import (
	"errors"
	"testing"

	"hotelops-backend/models"
)

func TestRoomStatusForTransition(t *testing.T) {
	tests := []struct{ to, want string }{
		{models.StatusCheckedIn, models.RoomOccupied},
		{models.StatusCheckedOut, models.RoomAvailable},
		// Approving, rejecting or cancelling a booking says nothing about
		// who is in the room today, so the catalog stays untouched.
		{models.StatusConfirmed, ""},
		{models.StatusCancelled, ""},
		{models.StatusRejected, ""},
		{models.StatusPendingApproval, ""},
	}
	for _, tt := range tests {
		if got := roomStatusForTransition(tt.to); got != tt.want {
			t.Errorf("roomStatusForTransition(%s) = %q, want %q", tt.to, got, tt.want)
		}
	}
}

// Cancelling a future booking on a room somebody currently occupies must not
// flip that room back to Available.
func TestCancelledFutureBookingLeavesOccupiedRoomAlone(t *testing.T) {
	if roomStatusForTransition(models.StatusCancelled) != "" {
		t.Fatal("cancellation must not write a room status")
	}
	if roomStatusForTransition(models.StatusRejected) != "" {
		t.Fatal("rejection must not write a room status")
	}
}

func TestDepositTarget(t *testing.T) {
	payment := &models.Payment{Status: models.PaymentAuthorized}

	got, err := depositTarget(payment, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != payment {
		t.Error("positive deposit must land on the payment record")
	}

	// No deposit, nothing to validate.
	for _, p := range []*models.Payment{payment, nil} {
		got, err = depositTarget(p, 0)
		if err != nil || got != nil {
			t.Errorf("zero deposit: got (%v, %v), want (nil, nil)", got, err)
		}
	}

	// A positive deposit with no payment row is corrupt state, not a no-op.
	_, err = depositTarget(nil, 50)
	if err == nil {
		t.Fatal("deposit without a payment record must fail")
	}
	if !errors.Is(err, ErrInvalidPaymentState) {
		t.Errorf("expected ErrInvalidPaymentState, got %v", err)
	}
}
