package models

// Reservation statuses. Stored as strings so the dashboard queries stay
// readable; the transition table below is the only place that decides
// which moves are legal.
const (
	StatusPendingApproval = "PendingApproval"
	StatusConfirmed       = "Confirmed"
	StatusCheckedIn       = "CheckedIn"
	StatusCheckedOut      = "CheckedOut"
	StatusCancelled       = "Cancelled"
	StatusRejected        = "Rejected"
)

// reservationTransitions maps a current status to the set of statuses it may
// move to. Terminal statuses have no entry. No transition skips a state.
var reservationTransitions = map[string]map[string]bool{
	StatusPendingApproval: {
		StatusConfirmed: true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCheckedIn: true,
		StatusCancelled: true,
	},
	StatusCheckedIn: {
		StatusCheckedOut: true,
	},
}

// CanTransition reports whether a reservation may move from one status to
// another. Unknown statuses never transition.
func CanTransition(from, to string) bool {
	next, ok := reservationTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// IsTerminalStatus reports whether the status accepts no further transitions.
func IsTerminalStatus(status string) bool {
	_, ok := reservationTransitions[status]
	return !ok
}

// BlocksAvailability reports whether a reservation in this status still
// counts against room availability. Cancelled and Rejected stays release
// their dates; everything else (including CheckedOut history) keeps them.
func BlocksAvailability(status string) bool {
	return status != StatusCancelled && status != StatusRejected
}

// Payment statuses.
const (
	PaymentNotStarted = "NotStarted"
	PaymentAuthorized = "Authorized"
	PaymentCaptured   = "Captured"
	PaymentVoided     = "Voided"
	PaymentRefunded   = "Refunded"
	PaymentFailed     = "Failed"
)

// Payment methods form a closed set; behavior never branches on free-form
// strings coming from the client.
const (
	MethodCardOnFile = "card_on_file"
	MethodCard       = "card"
	MethodCash       = "cash"
)

// IsValidPaymentMethod reports whether m is one of the supported methods.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case MethodCardOnFile, MethodCard, MethodCash:
		return true
	}
	return false
}

// Invoice types and statuses.
const (
	InvoiceProforma = "Proforma"
	InvoiceFinal    = "Final"

	InvoiceDraft     = "Draft"
	InvoiceIssued    = "Issued"
	InvoicePaid      = "Paid"
	InvoiceCancelled = "Cancelled"
)

// Room statuses used by the room catalog.
const (
	RoomAvailable = "Available"
	RoomReserved  = "Reserved"
	RoomOccupied  = "Occupied"
)
