package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode returns a short uppercase booking reference, e.g.
// "BK-9F3A2C1D". Uniqueness is enforced by the reservations table; callers
// retry on collision.
func NewReferenceCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + id[:8]
}

// NewIdempotencyKey returns a fresh idempotency key for a payment
// authorization when the client did not supply one.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
