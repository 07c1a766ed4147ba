package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// ParseStayDate parses a YYYY-MM-DD date and normalizes it to midnight UTC.
// Stay dates carry no time-of-day component anywhere in the engine.
func ParseStayDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return DateOnly(t), nil
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights between check-in and check-out.
// Zero or negative means the range is invalid.
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// Overlaps reports whether two half-open [checkIn, checkOut) ranges
// intersect. Adjacent stays (one checks out the day the other checks in)
// do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// StayDates expands [checkIn, checkOut) to the nights it occupies, one date
// per night. Checkout day itself is not occupied.
func StayDates(checkIn, checkOut time.Time) []time.Time {
	var dates []time.Time
	for d := DateOnly(checkIn); d.Before(DateOnly(checkOut)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
