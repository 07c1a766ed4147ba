package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// InvoiceLine is a single line on an invoice. The advance-payment line on a
// final invoice carries a negative amount.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// Invoice is an immutable snapshot of charges at a lifecycle point: one
// Proforma at booking time, at most one Final at check-out. Lines are kept
// as a JSON snapshot so later room-rate or charge edits can never reach an
// issued invoice.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	ReservationID uint   `gorm:"index;column:reservation_id" json:"reservation_id"`
	Type          string `gorm:"column:type;size:16" json:"type"`
	Status        string `gorm:"column:status;size:16" json:"status"`

	Lines datatypes.JSON `gorm:"column:lines" json:"lines"`

	Subtotal  float64 `gorm:"column:subtotal" json:"subtotal"`
	TaxRate   float64 `gorm:"column:tax_rate" json:"tax_rate"`
	TaxAmount float64 `gorm:"column:tax_amount" json:"tax_amount"`
	Total     float64 `gorm:"column:total" json:"total"`

	IssuedAt time.Time `gorm:"column:issued_at" json:"issued_at"`
}

// DecodeLines unpacks the stored line-item snapshot.
func (inv *Invoice) DecodeLines() ([]InvoiceLine, error) {
	var lines []InvoiceLine
	if len(inv.Lines) == 0 {
		return lines, nil
	}
	if err := json.Unmarshal(inv.Lines, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
