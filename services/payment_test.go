package services

import (
	"errors"
	"fmt"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
)

// The idempotency key's unique index is what makes Authorize idempotent: a
// reused key must classify as ErrDuplicateRequest (so the caller gets the
// existing payment back), never as a fresh authorization or a generic
// failure.
func TestAuthorizeOutcome(t *testing.T) {
	if got := authorizeOutcome(nil); got != nil {
		t.Errorf("successful insert must classify as nil, got %v", got)
	}

	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if !errors.Is(authorizeOutcome(dup), ErrDuplicateRequest) {
		t.Error("duplicate key must classify as ErrDuplicateRequest")
	}

	wrapped := fmt.Errorf("insert payment: %w", dup)
	if !errors.Is(authorizeOutcome(wrapped), ErrDuplicateRequest) {
		t.Error("wrapped duplicate key must classify as ErrDuplicateRequest")
	}

	fk := &mysql.MySQLError{Number: 1452, Message: "FK violation"}
	if errors.Is(authorizeOutcome(fk), ErrDuplicateRequest) {
		t.Error("foreign key violation is not a duplicate request")
	}

	plain := errors.New("connection reset")
	if got := authorizeOutcome(plain); got != plain {
		t.Errorf("other failures must pass through unchanged, got %v", got)
	}
}
