package models

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPendingApproval, StatusConfirmed},
		{StatusPendingApproval, StatusRejected},
		{StatusPendingApproval, StatusCancelled},
		{StatusConfirmed, StatusCheckedIn},
		{StatusConfirmed, StatusCancelled},
		{StatusCheckedIn, StatusCheckedOut},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to string }{
		// no state skipping
		{StatusPendingApproval, StatusCheckedIn},
		{StatusPendingApproval, StatusCheckedOut},
		{StatusConfirmed, StatusCheckedOut},
		// no backward moves
		{StatusCheckedIn, StatusPendingApproval},
		{StatusCheckedIn, StatusConfirmed},
		{StatusCheckedIn, StatusCancelled},
		{StatusConfirmed, StatusPendingApproval},
		{StatusConfirmed, StatusRejected},
		// terminal states accept nothing
		{StatusCheckedOut, StatusCheckedIn},
		{StatusCancelled, StatusConfirmed},
		{StatusRejected, StatusConfirmed},
		{StatusRejected, StatusPendingApproval},
		// unknowns never transition
		{"Bogus", StatusConfirmed},
		{StatusConfirmed, "Bogus"},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be denied", tr.from, tr.to)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	for _, s := range []string{StatusCheckedOut, StatusCancelled, StatusRejected} {
		if !IsTerminalStatus(s) {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []string{StatusPendingApproval, StatusConfirmed, StatusCheckedIn} {
		if IsTerminalStatus(s) {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestBlocksAvailability(t *testing.T) {
	// Cancelled/Rejected free their dates; checked-out history keeps them.
	for _, s := range []string{StatusPendingApproval, StatusConfirmed, StatusCheckedIn, StatusCheckedOut} {
		if !BlocksAvailability(s) {
			t.Errorf("expected %s to block availability", s)
		}
	}
	for _, s := range []string{StatusCancelled, StatusRejected} {
		if BlocksAvailability(s) {
			t.Errorf("expected %s to release availability", s)
		}
	}
}

func TestPaymentGuards(t *testing.T) {
	p := Payment{Status: PaymentAuthorized}
	if !p.CanVoid() || !p.CanCapture() {
		t.Error("authorized payment must allow void and capture")
	}

	for _, s := range []string{PaymentNotStarted, PaymentCaptured, PaymentVoided, PaymentRefunded, PaymentFailed} {
		p := Payment{Status: s}
		if p.CanVoid() {
			t.Errorf("payment in %s must not void", s)
		}
		if p.CanCapture() {
			t.Errorf("payment in %s must not capture", s)
		}
	}
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, m := range []string{MethodCardOnFile, MethodCard, MethodCash} {
		if !IsValidPaymentMethod(m) {
			t.Errorf("expected %q to be valid", m)
		}
	}
	for _, m := range []string{"", "bitcoin", "CARD", "Cash"} {
		if IsValidPaymentMethod(m) {
			t.Errorf("expected %q to be invalid", m)
		}
	}
}
