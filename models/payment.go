package models

import (
	"time"
)

// Payment is the single monetary authorization tied to a reservation.
// No funds move in this system; the gateway capability is an external
// collaborator and we only track the state of the authorization.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReservationID uint `gorm:"uniqueIndex;column:reservation_id" json:"reservation_id"`

	// IdempotencyKey guards against a retried createBooking authorizing twice.
	IdempotencyKey string `gorm:"column:idempotency_key;size:64;uniqueIndex" json:"idempotency_key"`

	Status string `gorm:"column:status;size:32" json:"status"`
	Method string `gorm:"column:method;size:32" json:"method,omitempty"`

	AuthorizedAmount float64 `gorm:"column:authorized_amount" json:"authorized_amount"`
	AdvanceAmount    float64 `gorm:"column:advance_amount" json:"advance_amount"`
	CapturedAmount   float64 `gorm:"column:captured_amount" json:"captured_amount"`

	CapturedAt *time.Time `gorm:"column:captured_at" json:"captured_at,omitempty"`
	VoidedAt   *time.Time `gorm:"column:voided_at" json:"voided_at,omitempty"`
}

// CanVoid reports whether the payment may move to Voided.
func (p *Payment) CanVoid() bool {
	return p.Status == PaymentAuthorized
}

// CanCapture reports whether the payment may move to Captured.
func (p *Payment) CanCapture() bool {
	return p.Status == PaymentAuthorized
}
