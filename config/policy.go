package config

import (
	"time"

	"hotelops-backend/utils"
)

// BookingPolicy centralizes the stay-length and billing rules that used to
// be scattered as constants. It is built once at startup and injected into
// the booking service.
type BookingPolicy struct {
	MinNights int
	MaxNights int

	// TaxRate applies to final invoices, e.g. 0.08 for 8%.
	TaxRate float64

	// ApprovalTTL is how long a booking may sit in PendingApproval before the
	// sweeper auto-cancels it.
	ApprovalTTL time.Duration
}

// LoadBookingPolicy reads policy from the environment with the hotel's
// defaults.
func LoadBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MinNights:   utils.EnvIntOrDefault("BOOKING_MIN_NIGHTS", 1),
		MaxNights:   utils.EnvIntOrDefault("BOOKING_MAX_NIGHTS", 30),
		TaxRate:     utils.EnvFloatOrDefault("BOOKING_TAX_RATE", 0.08),
		ApprovalTTL: time.Duration(utils.EnvIntOrDefault("BOOKING_APPROVAL_TTL_HOURS", 48)) * time.Hour,
	}
}
