// Package events defines the domain events the booking engine emits for the
// notification collaborator, and the publisher that delivers them.
package events

import "time"

// Event types. Together with the reservation id they form the event key used
// for deduplication, so a retried publish of e.g. "booking.created" for the
// same reservation is dropped by consumers-side contract.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingConfirmed = "booking.confirmed"
	TypeCheckinWelcome   = "checkin.welcome"
	TypeCheckoutThanks   = "checkout.thanks"
)

// BookingEvent is the envelope published to the booking.events queue. It
// carries enough for downstream consumers to notify or log without querying
// the primary database.
type BookingEvent struct {
	EventID       string  `json:"event_id"`
	Type          string  `json:"type"`
	ReservationID uint    `json:"reservation_id"`
	ReferenceCode string  `json:"reference_code"`
	CustomerID    uint    `json:"customer_id"`
	RoomNumber    string  `json:"room_number,omitempty"`
	CheckIn       string  `json:"check_in,omitempty"`
	CheckOut      string  `json:"check_out,omitempty"`
	TotalPrice    float64 `json:"total_price,omitempty"`
	OccurredAt    string  `json:"occurred_at"`
}

// HousekeepingTask asks housekeeping to turn a room around after checkout.
type HousekeepingTask struct {
	TaskID        string `json:"task_id"`
	RoomNumber    string `json:"room_number"`
	ReservationID uint   `json:"reservation_id"`
	RequestedAt   string `json:"requested_at"`
}

// Timestamp formats t the way consumers expect.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
