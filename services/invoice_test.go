package services

import (
	"math"
	"testing"

	"hotelops-backend/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestBuildProformaLines(t *testing.T) {
	res := &models.Reservation{Nights: 4, TotalPrice: 500}
	lines := BuildProformaLines(res)
	if len(lines) != 1 {
		t.Fatalf("proforma must have exactly one line, got %d", len(lines))
	}
	if lines[0].Amount != 500 || lines[0].Quantity != 4 {
		t.Errorf("unexpected proforma line: %+v", lines[0])
	}
}

func TestBuildFinalLines(t *testing.T) {
	res := &models.Reservation{
		Nights:     2,
		TotalPrice: 200,
		Charges: []models.Charge{
			{Description: "Minibar", Amount: 20},
			{Description: "Laundry", Amount: 15},
		},
	}
	payment := &models.Payment{AdvanceAmount: 50}

	lines := BuildFinalLines(res, payment)
	if len(lines) != 4 {
		t.Fatalf("expected room + 2 charges + advance = 4 lines, got %d", len(lines))
	}
	last := lines[len(lines)-1]
	if last.Amount != -50 {
		t.Errorf("advance line must be negative, got %+v", last)
	}

	// No advance line when nothing was collected up front.
	lines = BuildFinalLines(res, &models.Payment{AdvanceAmount: 0})
	if len(lines) != 3 {
		t.Errorf("expected no advance line, got %d lines", len(lines))
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name                 string
		lines                []models.InvoiceLine
		taxRate              float64
		subtotal, tax, total float64
	}{
		{
			name: "room plus charge minus advance at 8%",
			lines: []models.InvoiceLine{
				{Description: "Room charge, 2 nights", Amount: 200},
				{Description: "Minibar", Amount: 20},
				{Description: "Advance payment", Amount: -50},
			},
			taxRate:  0.08,
			subtotal: 220,
			tax:      17.6,
			total:    187.6,
		},
		{
			name: "proforma, no credits",
			lines: []models.InvoiceLine{
				{Description: "Estimated stay, 4 nights", Amount: 500},
			},
			taxRate:  0.08,
			subtotal: 500,
			tax:      40,
			total:    540,
		},
		{
			name: "zero tax rate",
			lines: []models.InvoiceLine{
				{Description: "Room charge, 1 nights", Amount: 80},
				{Description: "Advance payment", Amount: -80},
			},
			taxRate:  0,
			subtotal: 80,
			tax:      0,
			total:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := ComputeTotals(tt.lines, tt.taxRate)
			if !almostEqual(subtotal, tt.subtotal) {
				t.Errorf("subtotal = %v, want %v", subtotal, tt.subtotal)
			}
			if !almostEqual(tax, tt.tax) {
				t.Errorf("tax = %v, want %v", tax, tt.tax)
			}
			if !almostEqual(total, tt.total) {
				t.Errorf("total = %v, want %v", total, tt.total)
			}
		})
	}
}

// Final total must satisfy: roomCharge + charges + tax - advance.
func TestFinalInvoiceArithmetic(t *testing.T) {
	res := &models.Reservation{
		Nights:     2,
		TotalPrice: 200,
		Charges:    []models.Charge{{Description: "Minibar", Amount: 20}},
	}
	payment := &models.Payment{AdvanceAmount: 50}

	lines := BuildFinalLines(res, payment)
	subtotal, tax, total := ComputeTotals(lines, 0.08)

	wantSubtotal := 200.0 + 20.0
	wantTax := wantSubtotal * 0.08
	wantTotal := wantSubtotal + wantTax - 50.0
	if !almostEqual(subtotal, wantSubtotal) || !almostEqual(tax, wantTax) || !almostEqual(total, wantTotal) {
		t.Errorf("got (%v, %v, %v), want (%v, %v, %v)", subtotal, tax, total, wantSubtotal, wantTax, wantTotal)
	}
}
