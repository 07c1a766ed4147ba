package services

import (
	"errors"
	"fmt"
	"time"

	"hotelops-backend/models"

	"gorm.io/gorm"
)

// PaymentService tracks the single monetary authorization per reservation
// through Authorized -> Captured/Voided. It never talks to a real gateway;
// settlement capability is an external collaborator. All methods take the
// caller's transaction handle so payment state always commits (or rolls
// back) together with the reservation that owns it.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// authorizeOutcome classifies the result of the payment insert: nil means
// the authorization was created, ErrDuplicateRequest means the idempotency
// key was already used (the unique index rejected the row), anything else is
// a real failure. The unique index, not the caller's pre-check, is what
// guarantees a reused key can never produce a second Payment.
func authorizeOutcome(createErr error) error {
	if createErr == nil {
		return nil
	}
	if isDuplicateKeyError(createErr) {
		return ErrDuplicateRequest
	}
	return createErr
}

// Authorize creates a Payment in Authorized status. When the idempotency key
// was already used, the existing payment is returned with ErrDuplicateRequest
// so a retried createBooking never authorizes twice.
func (s *PaymentService) Authorize(tx *gorm.DB, reservationID uint, amount, advance float64, idempotencyKey string) (*models.Payment, error) {
	if amount < 0 || advance < 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	payment := models.Payment{
		ReservationID:    reservationID,
		IdempotencyKey:   idempotencyKey,
		Status:           models.PaymentAuthorized,
		AuthorizedAmount: amount,
		AdvanceAmount:    advance,
	}
	createErr := tx.Create(&payment).Error
	switch outcome := authorizeOutcome(createErr); {
	case outcome == nil:
		return &payment, nil
	case errors.Is(outcome, ErrDuplicateRequest):
		var existing models.Payment
		if lookupErr := tx.Where("idempotency_key = ?", idempotencyKey).First(&existing).Error; lookupErr != nil {
			return nil, fmt.Errorf("failed to load payment for reused key: %w", createErr)
		}
		return &existing, ErrDuplicateRequest
	default:
		return nil, fmt.Errorf("failed to create payment: %w", createErr)
	}
}

// Void transitions Authorized -> Voided.
func (s *PaymentService) Void(tx *gorm.DB, paymentID uint) error {
	var payment models.Payment
	if err := tx.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if !payment.CanVoid() {
		return fmt.Errorf("%w: cannot void payment in status %s", ErrInvalidPaymentState, payment.Status)
	}

	now := time.Now().UTC()
	return tx.Model(&payment).Updates(map[string]interface{}{
		"status":    models.PaymentVoided,
		"voided_at": now,
	}).Error
}

// Capture transitions Authorized -> Captured, recording the settled amount
// and method. finalAmount may be zero when the advance already covered the
// bill.
func (s *PaymentService) Capture(tx *gorm.DB, paymentID uint, finalAmount float64, method string) error {
	if finalAmount < 0 {
		return &ValidationError{Field: "finalAmount", Reason: "must not be negative"}
	}
	if method != "" && !models.IsValidPaymentMethod(method) {
		return &ValidationError{Field: "method", Reason: "unknown payment method"}
	}

	var payment models.Payment
	if err := tx.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if !payment.CanCapture() {
		return fmt.Errorf("%w: cannot capture payment in status %s", ErrInvalidPaymentState, payment.Status)
	}

	now := time.Now().UTC()
	return tx.Model(&payment).Updates(map[string]interface{}{
		"status":          models.PaymentCaptured,
		"captured_amount": finalAmount,
		"method":          method,
		"captured_at":     now,
	}).Error
}
