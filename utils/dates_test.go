package utils

import (
	"testing"
	"time"
)

func d(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                 string
		aIn, aOut, bIn, bOut string
		want                 bool
	}{
		{"identical range", "2026-04-01", "2026-04-05", "2026-04-01", "2026-04-05", true},
		{"partial overlap", "2026-04-01", "2026-04-05", "2026-04-03", "2026-04-07", true},
		{"contained", "2026-04-01", "2026-04-10", "2026-04-03", "2026-04-05", true},
		{"adjacent after (checkout day = next check-in)", "2026-04-01", "2026-04-05", "2026-04-05", "2026-04-08", false},
		{"adjacent before", "2026-04-05", "2026-04-08", "2026-04-01", "2026-04-05", false},
		{"disjoint", "2026-04-01", "2026-04-03", "2026-04-10", "2026-04-12", false},
		{"one night inside", "2026-04-01", "2026-04-05", "2026-04-04", "2026-04-05", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(d(tt.aIn), d(tt.aOut), d(tt.bIn), d(tt.bOut))
			if got != tt.want {
				t.Errorf("Overlaps(%s..%s, %s..%s) = %v, want %v", tt.aIn, tt.aOut, tt.bIn, tt.bOut, got, tt.want)
			}
			// symmetry
			if rev := Overlaps(d(tt.bIn), d(tt.bOut), d(tt.aIn), d(tt.aOut)); rev != tt.want {
				t.Errorf("Overlaps is not symmetric for %s", tt.name)
			}
		})
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		in, out string
		want    int
	}{
		{"2026-04-01", "2026-04-05", 4},
		{"2026-04-01", "2026-04-02", 1},
		{"2026-04-01", "2026-04-01", 0},
		{"2026-04-05", "2026-04-01", -4},
	}
	for _, tt := range tests {
		if got := Nights(d(tt.in), d(tt.out)); got != tt.want {
			t.Errorf("Nights(%s, %s) = %d, want %d", tt.in, tt.out, got, tt.want)
		}
	}
}

func TestStayDates(t *testing.T) {
	dates := StayDates(d("2026-04-01"), d("2026-04-04"))
	if len(dates) != 3 {
		t.Fatalf("expected 3 nights, got %d", len(dates))
	}
	want := []string{"2026-04-01", "2026-04-02", "2026-04-03"}
	for i, w := range want {
		if dates[i].Format(DateLayout) != w {
			t.Errorf("night %d = %s, want %s", i, dates[i].Format(DateLayout), w)
		}
	}
	// Checkout day itself is never occupied.
	for _, dt := range dates {
		if dt.Equal(d("2026-04-04")) {
			t.Error("checkout day must not be held")
		}
	}

	if got := StayDates(d("2026-04-01"), d("2026-04-01")); len(got) != 0 {
		t.Errorf("zero-night stay should hold no dates, got %d", len(got))
	}
}

func TestParseStayDate(t *testing.T) {
	got, err := ParseStayDate("2026-04-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("expected midnight UTC, got %v", got)
	}

	for _, bad := range []string{"", "01/04/2026", "2026-13-01", "april first"} {
		if _, err := ParseStayDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
