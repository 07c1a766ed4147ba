package services

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"hotelops-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceService computes and persists invoice snapshots. Builders are pure
// functions of reservation + payment state; persistence happens inside the
// caller's transaction so an invoice can never outlive a failed transition.
type InvoiceService struct {
	DB      *gorm.DB
	TaxRate float64
}

func NewInvoiceService(db *gorm.DB, taxRate float64) *InvoiceService {
	return &InvoiceService{DB: db, TaxRate: taxRate}
}

// round2 keeps invoice money at cent precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildProformaLines returns the single estimate line for a new booking.
func BuildProformaLines(res *models.Reservation) []models.InvoiceLine {
	return []models.InvoiceLine{
		{
			Description: fmt.Sprintf("Estimated stay, %d nights", res.Nights),
			Quantity:    res.Nights,
			Amount:      res.TotalPrice,
		},
	}
}

// BuildFinalLines returns the settled line items: room charge, each ad-hoc
// charge, and a negative line for the advance already collected.
func BuildFinalLines(res *models.Reservation, payment *models.Payment) []models.InvoiceLine {
	lines := []models.InvoiceLine{
		{
			Description: fmt.Sprintf("Room charge, %d nights", res.Nights),
			Quantity:    res.Nights,
			Amount:      res.TotalPrice,
		},
	}
	for _, c := range res.Charges {
		lines = append(lines, models.InvoiceLine{
			Description: c.Description,
			Quantity:    1,
			Amount:      c.Amount,
		})
	}
	if payment != nil && payment.AdvanceAmount > 0 {
		lines = append(lines, models.InvoiceLine{
			Description: "Advance payment",
			Quantity:    1,
			Amount:      -payment.AdvanceAmount,
		})
	}
	return lines
}

// ComputeTotals splits lines into subtotal (positive items), tax on the
// subtotal, and the grand total after subtracting credits (negative lines).
func ComputeTotals(lines []models.InvoiceLine, taxRate float64) (subtotal, tax, total float64) {
	var credits float64
	for _, l := range lines {
		if l.Amount >= 0 {
			subtotal += l.Amount
		} else {
			credits += -l.Amount
		}
	}
	subtotal = round2(subtotal)
	tax = round2(subtotal * taxRate)
	total = round2(subtotal + tax - credits)
	return subtotal, tax, total
}

// IssueProforma creates the estimate invoice attached at booking time.
func (s *InvoiceService) IssueProforma(tx *gorm.DB, res *models.Reservation) (*models.Invoice, error) {
	lines := BuildProformaLines(res)
	return s.issue(tx, res.ID, models.InvoiceProforma, lines)
}

// IssueFinal creates the settled invoice at check-out. It refuses to run
// before the reservation reaches CheckedIn, since charges are still open
// until then.
func (s *InvoiceService) IssueFinal(tx *gorm.DB, res *models.Reservation, payment *models.Payment) (*models.Invoice, error) {
	if res.Status != models.StatusCheckedIn {
		return nil, fmt.Errorf("%w: reservation %d is %s", ErrIncompleteCheckout, res.ID, res.Status)
	}

	var count int64
	if err := tx.Model(&models.Invoice{}).
		Where("reservation_id = ? AND type = ?", res.ID, models.InvoiceFinal).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing final invoice: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: final invoice already issued for reservation %d", ErrInvalidState, res.ID)
	}

	lines := BuildFinalLines(res, payment)
	return s.issue(tx, res.ID, models.InvoiceFinal, lines)
}

func (s *InvoiceService) issue(tx *gorm.DB, reservationID uint, invoiceType string, lines []models.InvoiceLine) (*models.Invoice, error) {
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice lines: %w", err)
	}

	subtotal, tax, total := ComputeTotals(lines, s.TaxRate)
	inv := models.Invoice{
		ReservationID: reservationID,
		Type:          invoiceType,
		Status:        models.InvoiceIssued,
		Lines:         datatypes.JSON(raw),
		Subtotal:      subtotal,
		TaxRate:       s.TaxRate,
		TaxAmount:     tax,
		Total:         total,
		IssuedAt:      time.Now().UTC(),
	}
	if err := tx.Create(&inv).Error; err != nil {
		return nil, fmt.Errorf("failed to create %s invoice: %w", invoiceType, err)
	}
	return &inv, nil
}

// ListByReservation returns the invoices attached to a reservation, oldest
// first.
func (s *InvoiceService) ListByReservation(reservationID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.DB.Where("reservation_id = ?", reservationID).Order("id ASC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}
