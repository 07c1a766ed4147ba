package services

import (
	"errors"
	"testing"

	"hotelops-backend/models"
)

func TestComputePayable(t *testing.T) {
	tests := []struct {
		name                              string
		roomCharge, chargesTotal, advance float64
		want                              float64
	}{
		{"room plus minibar minus deposit", 200, 20, 50, 170},
		{"no charges no advance", 500, 0, 0, 500},
		{"fully prepaid", 200, 0, 200, 0},
		{"overpaid advance", 100, 0, 150, -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputePayable(tt.roomCharge, tt.chargesTotal, tt.advance); got != tt.want {
				t.Errorf("ComputePayable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSettlement(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		payable    float64
		paidAmount float64
		want       float64
		wantErr    bool
	}{
		{"card on file captures full payable", models.MethodCardOnFile, 170, 0, 170, false},
		{"cash settles what the desk collected", models.MethodCash, 170, 170, 170, false},
		{"cash short amount passes through (guard catches it later)", models.MethodCash, 170, 100, 100, false},
		{"card settles caller amount", models.MethodCard, 80, 90, 90, false},
		{"zero payable needs no method", "", 0, 0, 0, false},
		{"negative payable settles at zero", "", -20, 0, 0, false},
		{"unknown method rejected", "bitcoin", 50, 50, 0, true},
		{"missing method with balance due rejected", "", 50, 50, 0, true},
		{"negative paid amount rejected", models.MethodCash, 50, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSettlement(tt.method, tt.payable, tt.paidAmount)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveSettlement = %v, want %v", got, tt.want)
			}
		})
	}
}

// The strict zero-balance rule: checkout proceeds iff paying covers payable.
func TestZeroBalanceRule(t *testing.T) {
	payable := ComputePayable(200, 20, 50)
	if payable != 170 {
		t.Fatalf("payable = %v, want 170", payable)
	}

	paying, err := ResolveSettlement(models.MethodCash, payable, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payable-paying <= 0 {
		t.Fatal("expected a shortfall")
	}
	balErr := &BalanceError{Payable: payable, Paying: paying}
	if balErr.Shortfall() != 70 {
		t.Errorf("shortfall = %v, want 70", balErr.Shortfall())
	}
	if !errors.Is(balErr, ErrOutstandingBalance) {
		t.Error("BalanceError must match ErrOutstandingBalance")
	}

	paying, err = ResolveSettlement(models.MethodCash, payable, 170)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payable-paying > 0 {
		t.Error("exact payment must clear the balance")
	}
}
