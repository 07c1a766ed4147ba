// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hotelops-backend/config"
	"hotelops-backend/events"
	"hotelops-backend/models"
	"hotelops-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService is the sole authority for reservation status transitions.
// Every mutating operation runs in one transaction, takes a FOR UPDATE lock
// on the reservation row, re-checks the status precondition under the lock,
// and moves payment/invoice/audit state in lockstep. Events go out only
// after the transaction commits.
type BookingService struct {
	DB           *gorm.DB
	Policy       config.BookingPolicy
	Availability *AvailabilityService
	Payments     *PaymentService
	Invoices     *InvoiceService
	Publisher    *events.Publisher
}

func NewBookingService(
	db *gorm.DB,
	policy config.BookingPolicy,
	availability *AvailabilityService,
	payments *PaymentService,
	invoices *InvoiceService,
	publisher *events.Publisher,
) *BookingService {
	return &BookingService{
		DB:           db,
		Policy:       policy,
		Availability: availability,
		Payments:     payments,
		Invoices:     invoices,
		Publisher:    publisher,
	}
}

// CreateBookingInput carries the validated request for a new reservation.
// Dates are midnight UTC. IdempotencyKey is optional; one is generated when
// absent.
type CreateBookingInput struct {
	CustomerID     uint
	RoomID         uint
	RoomType       string
	CheckIn        time.Time
	CheckOut       time.Time
	TotalPrice     float64
	AdvanceAmount  float64
	IdempotencyKey string
}

// referenceCreateAttempts bounds retries when a generated reference code
// collides.
const referenceCreateAttempts = 5

// CreateBooking validates the stay, runs the availability fast path, and
// creates the reservation + holds + authorized payment + proforma invoice in
// one transaction. The room_holds unique index is the real double-booking
// guard: when two requests race, the second insert fails with a duplicate
// key and surfaces as ErrRoomUnavailable.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Reservation, error) {
	if err := s.validateStay(in); err != nil {
		return nil, err
	}

	if in.IdempotencyKey == "" {
		in.IdempotencyKey = utils.NewIdempotencyKey()
	}

	// Retried request? Return the reservation the first attempt created.
	var prior models.Payment
	err := s.DB.Where("idempotency_key = ?", in.IdempotencyKey).First(&prior).Error
	if err == nil {
		existing, loadErr := s.GetBooking(prior.ReservationID)
		if loadErr != nil {
			return nil, loadErr
		}
		return existing, ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("idempotency lookup failed: %w", err)
	}

	var cust models.Customer
	if err := s.DB.First(&cust, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("db error checking customer: %w", err)
	}
	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("db error checking room %d: %w", in.RoomID, err)
	}

	// Fast path: produce a friendly conflict message before paying the cost
	// of a transaction. The authoritative check is the hold insert below.
	if err := s.Availability.CheckOverlap(in.RoomID, in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}

	var reservationID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		reservation := models.Reservation{
			CustomerID: in.CustomerID,
			RoomID:     in.RoomID,
			RoomType:   in.RoomType,
			Status:     models.StatusPendingApproval,
			CheckIn:    in.CheckIn,
			CheckOut:   in.CheckOut,
			Nights:     utils.Nights(in.CheckIn, in.CheckOut),
			TotalPrice: in.TotalPrice,
		}

		var createErr error
		for attempt := 0; attempt < referenceCreateAttempts; attempt++ {
			reservation.ReferenceCode = utils.NewReferenceCode()
			createErr = tx.Create(&reservation).Error
			if createErr == nil {
				break
			}
			if isDuplicateKeyError(createErr) {
				log.Printf("reference code collision (attempt %d) - retrying", attempt+1)
				continue
			}
			return fmt.Errorf("failed to create reservation: %w", createErr)
		}
		if createErr != nil {
			return fmt.Errorf("failed to create reservation after retries: %w", createErr)
		}
		reservationID = reservation.ID

		if err := insertHolds(tx, in.RoomID, reservation.ID, in.CheckIn, in.CheckOut); err != nil {
			if isDuplicateKeyError(err) {
				// Lost the race. Re-run the overlap query for a useful message;
				// fall back to the bare conflict error if it finds nothing.
				if overlapErr := s.Availability.checkOverlapTx(tx, in.RoomID, in.CheckIn, in.CheckOut); overlapErr != nil {
					return overlapErr
				}
				return ErrRoomUnavailable
			}
			return fmt.Errorf("failed to insert room holds: %w", err)
		}

		if _, err := s.Payments.Authorize(tx, reservation.ID, in.TotalPrice, in.AdvanceAmount, in.IdempotencyKey); err != nil {
			return err
		}

		if _, err := s.Invoices.IssueProforma(tx, &reservation); err != nil {
			return err
		}

		return recordTransition(tx, reservation.ID, "", models.StatusPendingApproval, "", map[string]interface{}{
			"room_id":   in.RoomID,
			"check_in":  in.CheckIn.Format(utils.DateLayout),
			"check_out": in.CheckOut.Format(utils.DateLayout),
		})
	})
	if txErr != nil {
		// Two retries can race past the pre-check above; the idempotency key
		// unique index catches the loser inside the transaction. Resolve it
		// the same way as the pre-check: hand back the first attempt's
		// reservation.
		if errors.Is(txErr, ErrDuplicateRequest) {
			var dup models.Payment
			if err := s.DB.Where("idempotency_key = ?", in.IdempotencyKey).First(&dup).Error; err == nil {
				if existing, loadErr := s.GetBooking(dup.ReservationID); loadErr == nil {
					return existing, ErrDuplicateRequest
				}
			}
		}
		return nil, txErr
	}

	result, err := s.GetBooking(reservationID)
	if err != nil {
		return nil, err
	}
	s.emit(events.TypeBookingCreated, result)
	return result, nil
}

func (s *BookingService) validateStay(in CreateBookingInput) error {
	today := utils.DateOnly(time.Now().UTC())
	if in.CheckIn.Before(today) {
		return &ValidationError{Field: "check_in", Reason: "must not be in the past"}
	}
	if !in.CheckOut.After(in.CheckIn) {
		return &ValidationError{Field: "check_out", Reason: "must be after check_in"}
	}
	nights := utils.Nights(in.CheckIn, in.CheckOut)
	if nights < s.Policy.MinNights {
		return &ValidationError{Field: "check_out", Reason: fmt.Sprintf("stay must be at least %d night(s)", s.Policy.MinNights)}
	}
	if nights > s.Policy.MaxNights {
		return &ValidationError{Field: "check_out", Reason: fmt.Sprintf("stay must be at most %d nights", s.Policy.MaxNights)}
	}
	if in.TotalPrice <= 0 {
		return &ValidationError{Field: "total_price", Reason: "must be positive"}
	}
	if in.AdvanceAmount < 0 {
		return &ValidationError{Field: "advance_amount", Reason: "must not be negative"}
	}
	return nil
}

// Approve moves PendingApproval -> Confirmed. Payment stays Authorized.
func (s *BookingService) Approve(reservationID uint) (*models.Reservation, error) {
	err := s.transition(reservationID, models.StatusConfirmed, "", func(tx *gorm.DB, res *models.Reservation) error {
		return nil
	})
	if err != nil {
		return nil, err
	}
	result, loadErr := s.GetBooking(reservationID)
	if loadErr != nil {
		return nil, loadErr
	}
	s.emit(events.TypeBookingConfirmed, result)
	return result, nil
}

// Reject moves PendingApproval -> Rejected, voids the authorization and
// releases the held dates. The reason lands in the audit trail.
func (s *BookingService) Reject(reservationID uint, reason string) (*models.Reservation, error) {
	err := s.transition(reservationID, models.StatusRejected, reason, func(tx *gorm.DB, res *models.Reservation) error {
		if res.Payment != nil && res.Payment.CanVoid() {
			if err := s.Payments.Void(tx, res.Payment.ID); err != nil {
				return err
			}
		}
		if err := releaseHolds(tx, res.ID); err != nil {
			return fmt.Errorf("failed to release holds: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetBooking(reservationID)
}

// CheckIn moves Confirmed -> CheckedIn, records the actual check-in time and
// assigned room number, folds the desk deposit into the advance, and flips
// the room to Occupied.
func (s *BookingService) CheckIn(reservationID uint, assignedRoomNumber string, depositAmount float64) (*models.Reservation, error) {
	if depositAmount < 0 {
		return nil, &ValidationError{Field: "deposit_amount", Reason: "must not be negative"}
	}
	err := s.transition(reservationID, models.StatusCheckedIn, "", func(tx *gorm.DB, res *models.Reservation) error {
		now := time.Now().UTC()
		updates := map[string]interface{}{
			"actual_check_in": now,
		}
		if assignedRoomNumber != "" {
			updates["assigned_room_number"] = assignedRoomNumber
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to record check-in: %w", err)
		}

		target, err := depositTarget(res.Payment, depositAmount)
		if err != nil {
			return fmt.Errorf("reservation %d: %w", res.ID, err)
		}
		if target != nil {
			if err := tx.Model(&models.Payment{}).
				Where("id = ?", target.ID).
				Update("advance_amount", gorm.Expr("advance_amount + ?", depositAmount)).Error; err != nil {
				return fmt.Errorf("failed to record deposit: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result, loadErr := s.GetBooking(reservationID)
	if loadErr != nil {
		return nil, loadErr
	}
	s.emit(events.TypeCheckinWelcome, result)
	return result, nil
}

// AddCharge appends an ad-hoc service charge. Only valid while CheckedIn.
func (s *BookingService) AddCharge(reservationID uint, description string, amount float64) ([]models.Charge, error) {
	if description == "" {
		return nil, &ValidationError{Field: "description", Reason: "is required"}
	}
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	var charges []models.Charge
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.StatusCheckedIn {
			return fmt.Errorf("%w: cannot add charge while %s", ErrInvalidState, res.Status)
		}
		charge := models.Charge{
			ReservationID: reservationID,
			Description:   description,
			Amount:        amount,
		}
		if err := tx.Create(&charge).Error; err != nil {
			return fmt.Errorf("failed to create charge: %w", err)
		}
		return tx.Where("reservation_id = ?", reservationID).Order("id ASC").Find(&charges).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return charges, nil
}

// depositTarget validates that a positive desk deposit has a payment row to
// land on. A Confirmed reservation without a payment record is corrupt state;
// losing the deposit silently would be worse than failing the check-in.
func depositTarget(payment *models.Payment, deposit float64) (*models.Payment, error) {
	if deposit <= 0 {
		return nil, nil
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: no payment record to receive the deposit", ErrInvalidPaymentState)
	}
	return payment, nil
}

// roomStatusForTransition is the room-catalog policy: occupancy is what the
// catalog tracks, so only check-in and check-out touch it. Bookings for
// future dates never change what the room looks like today.
func roomStatusForTransition(to string) string {
	switch to {
	case models.StatusCheckedIn:
		return models.RoomOccupied
	case models.StatusCheckedOut:
		return models.RoomAvailable
	}
	return ""
}

// ComputePayable returns what is still owed at checkout.
func ComputePayable(roomCharge, chargesTotal, advance float64) float64 {
	return roomCharge + chargesTotal - advance
}

// ResolveSettlement decides how much is being paid now. Card-on-file
// captures the full payable against the existing authorization; cash/card
// settle whatever amount the desk collected. A fully prepaid stay
// (payable <= 0) settles at zero without requiring a method.
func ResolveSettlement(method string, payable, paidAmount float64) (float64, error) {
	if payable <= 0 {
		return 0, nil
	}
	switch method {
	case models.MethodCardOnFile:
		return payable, nil
	case models.MethodCash, models.MethodCard:
		if paidAmount < 0 {
			return 0, &ValidationError{Field: "paid_amount", Reason: "must not be negative"}
		}
		return paidAmount, nil
	default:
		return 0, &ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
}

// CheckoutResult is what the desk needs for the receipt.
type CheckoutResult struct {
	Reservation  *models.Reservation `json:"reservation"`
	FinalInvoice *models.Invoice     `json:"final_invoice"`
	TotalBill    float64             `json:"total_bill"`
	Payable      float64             `json:"payable"`
	PaidNow      float64             `json:"paid_now"`
}

// CheckOut settles the stay: computes the balance, enforces the strict
// zero-balance rule, captures the payment, issues the final invoice, moves
// the reservation to CheckedOut and frees the room. All of it in one
// transaction; a shortfall rolls everything back untouched.
func (s *BookingService) CheckOut(reservationID uint, paymentMethod string, paidAmount float64) (*CheckoutResult, error) {
	var result CheckoutResult
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.StatusCheckedIn {
			return fmt.Errorf("%w: cannot check out while %s", ErrInvalidState, res.Status)
		}
		if res.Payment == nil {
			return fmt.Errorf("reservation %d has no payment record", res.ID)
		}

		totalBill := res.TotalPrice + res.ChargesTotal()
		payable := ComputePayable(res.TotalPrice, res.ChargesTotal(), res.Payment.AdvanceAmount)
		payingNow, err := ResolveSettlement(paymentMethod, payable, paidAmount)
		if err != nil {
			return err
		}
		if payable-payingNow > 0 {
			return &BalanceError{Payable: payable, Paying: payingNow}
		}

		if err := s.Payments.Capture(tx, res.Payment.ID, payingNow, paymentMethod); err != nil {
			return err
		}

		invoice, err := s.Invoices.IssueFinal(tx, res, res.Payment)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).Updates(map[string]interface{}{
			"status":           models.StatusCheckedOut,
			"actual_check_out": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to record check-out: %w", err)
		}

		if roomStatus := roomStatusForTransition(models.StatusCheckedOut); roomStatus != "" {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", res.RoomID).
				Update("status", roomStatus).Error; err != nil {
				return fmt.Errorf("failed to update room status: %w", err)
			}
		}

		if err := recordTransition(tx, res.ID, models.StatusCheckedIn, models.StatusCheckedOut, "", map[string]interface{}{
			"total_bill": totalBill,
			"paid_now":   payingNow,
			"method":     paymentMethod,
		}); err != nil {
			return err
		}

		result = CheckoutResult{
			FinalInvoice: invoice,
			TotalBill:    totalBill,
			Payable:      payable,
			PaidNow:      payingNow,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	res, err := s.GetBooking(reservationID)
	if err != nil {
		return nil, err
	}
	result.Reservation = res
	s.emit(events.TypeCheckoutThanks, res)
	s.requestHousekeeping(res)
	return &result, nil
}

// Cancel is allowed from PendingApproval or Confirmed. Voids the payment if
// still authorized and releases the held dates.
func (s *BookingService) Cancel(reservationID uint, reason string) (*models.Reservation, error) {
	err := s.transition(reservationID, models.StatusCancelled, reason, func(tx *gorm.DB, res *models.Reservation) error {
		if res.Payment != nil && res.Payment.CanVoid() {
			if err := s.Payments.Void(tx, res.Payment.ID); err != nil {
				return err
			}
		}
		if err := releaseHolds(tx, res.ID); err != nil {
			return fmt.Errorf("failed to release holds: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetBooking(reservationID)
}

// ExpireStalePending auto-cancels reservations that sat in PendingApproval
// longer than the policy TTL. Called by the scheduler; each expiry goes
// through the normal Cancel path so payment/hold cleanup stays consistent.
func (s *BookingService) ExpireStalePending() (int, error) {
	cutoff := time.Now().UTC().Add(-s.Policy.ApprovalTTL)
	var stale []models.Reservation
	if err := s.DB.
		Where("status = ? AND created_at < ?", models.StatusPendingApproval, cutoff).
		Find(&stale).Error; err != nil {
		return 0, fmt.Errorf("failed to query stale reservations: %w", err)
	}

	expired := 0
	for _, res := range stale {
		if _, err := s.Cancel(res.ID, "approval window expired"); err != nil {
			// Racing an operator action is fine; skip and keep sweeping.
			if errors.Is(err, ErrInvalidState) {
				continue
			}
			log.Printf("sweeper: failed to expire reservation %d: %v", res.ID, err)
			continue
		}
		expired++
	}
	return expired, nil
}

// GetBooking loads a reservation with its relations.
func (s *BookingService) GetBooking(reservationID uint) (*models.Reservation, error) {
	var res models.Reservation
	err := s.DB.
		Preload("Customer").
		Preload("Room").
		Preload("Charges").
		Preload("Payment").
		Preload("Invoices").
		First(&res, reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &res, nil
}

// ListBookings returns all reservations, newest first.
func (s *BookingService) ListBookings() ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.
		Preload("Customer").
		Preload("Room").
		Preload("Charges").
		Preload("Payment").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}

// lockReservation loads the reservation row FOR UPDATE so concurrent
// operations on the same reservation serialize; the loser re-reads the new
// status and fails its precondition instead of corrupting state.
func lockReservation(tx *gorm.DB, reservationID uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock reservation: %w", err)
	}
	// Relations are loaded after the lock is held.
	var payment models.Payment
	err := tx.Where("reservation_id = ?", reservationID).First(&payment).Error
	if err == nil {
		res.Payment = &payment
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if err := tx.Where("reservation_id = ?", reservationID).Order("id ASC").Find(&res.Charges).Error; err != nil {
		return nil, fmt.Errorf("failed to load charges: %w", err)
	}
	return &res, nil
}

// transition runs a guarded status change: lock, precondition via the
// transition table, side effects, status write, audit row.
func (s *BookingService) transition(reservationID uint, to, reason string, sideEffects func(tx *gorm.DB, res *models.Reservation) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, reservationID)
		if err != nil {
			return err
		}
		if !models.CanTransition(res.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidState, res.Status, to)
		}
		if err := sideEffects(tx, res); err != nil {
			return err
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).Update("status", to).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		if roomStatus := roomStatusForTransition(to); roomStatus != "" {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", res.RoomID).
				Update("status", roomStatus).Error; err != nil {
				return fmt.Errorf("failed to update room status: %w", err)
			}
		}
		return recordTransition(tx, res.ID, res.Status, to, reason, nil)
	})
}

// emit publishes a booking event best-effort after commit. A publish
// failure never unwinds committed state.
func (s *BookingService) emit(eventType string, res *models.Reservation) {
	if s.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.Publisher.PublishBookingEvent(ctx, events.BookingEvent{
		Type:          eventType,
		ReservationID: res.ID,
		ReferenceCode: res.ReferenceCode,
		CustomerID:    res.CustomerID,
		RoomNumber:    res.Room.RoomNumber,
		CheckIn:       res.CheckIn.Format(utils.DateLayout),
		CheckOut:      res.CheckOut.Format(utils.DateLayout),
		TotalPrice:    res.TotalPrice,
	})
}

func (s *BookingService) requestHousekeeping(res *models.Reservation) {
	if s.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	roomNumber := res.Room.RoomNumber
	if res.AssignedRoomNumber != "" {
		roomNumber = res.AssignedRoomNumber
	}
	_ = s.Publisher.PublishHousekeepingTask(ctx, events.HousekeepingTask{
		RoomNumber:    roomNumber,
		ReservationID: res.ID,
	})
}
