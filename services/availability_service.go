package services

import (
	"fmt"
	"time"

	"hotelops-backend/models"
	"hotelops-backend/utils"

	"gorm.io/gorm"
)

// AvailabilityService answers "can room R be reserved for [checkIn,
// checkOut)?". It is a read-only fast path; the room_holds unique index is
// what actually serializes concurrent creates (see BookingService).
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// CheckOverlap scans non-terminal reservations for the room and tests the
// half-open interval condition. Returns a *ConflictError describing the
// first overlapping reservation, or nil when the range is free. Adjacent
// stays (checkout day = next check-in day) do not conflict.
func (s *AvailabilityService) CheckOverlap(roomID uint, checkIn, checkOut time.Time) error {
	return s.checkOverlapTx(s.DB, roomID, checkIn, checkOut)
}

func (s *AvailabilityService) checkOverlapTx(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) error {
	var existing []models.Reservation
	err := tx.
		Where("room_id = ?", roomID).
		Where("status NOT IN ?", []string{models.StatusCancelled, models.StatusRejected}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Order("check_in ASC").
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return fmt.Errorf("availability query failed: %w", err)
	}
	if len(existing) > 0 {
		c := existing[0]
		return &ConflictError{
			RoomID:        roomID,
			ReservationID: c.ID,
			CheckIn:       c.CheckIn,
			CheckOut:      c.CheckOut,
		}
	}
	return nil
}

// ReservedDates lists the nights currently held for a room within [from, to),
// for the availability calendar on the booking form.
func (s *AvailabilityService) ReservedDates(roomID uint, from, to time.Time) ([]time.Time, error) {
	var holds []models.RoomHold
	err := s.DB.
		Where("room_id = ? AND stay_date >= ? AND stay_date < ?", roomID, utils.DateOnly(from), utils.DateOnly(to)).
		Order("stay_date ASC").
		Find(&holds).Error
	if err != nil {
		return nil, fmt.Errorf("hold query failed: %w", err)
	}
	dates := make([]time.Time, 0, len(holds))
	for _, h := range holds {
		dates = append(dates, h.StayDate)
	}
	return dates, nil
}

// insertHolds writes one hold row per night of the stay inside tx. A
// duplicate-key failure means another reservation already owns one of the
// nights; it is translated to a conflict by the caller.
func insertHolds(tx *gorm.DB, roomID, reservationID uint, checkIn, checkOut time.Time) error {
	for _, d := range utils.StayDates(checkIn, checkOut) {
		hold := models.RoomHold{
			RoomID:        roomID,
			StayDate:      d,
			ReservationID: reservationID,
		}
		if err := tx.Create(&hold).Error; err != nil {
			return err
		}
	}
	return nil
}

// releaseHolds drops the hold rows for a reservation, freeing its dates.
func releaseHolds(tx *gorm.DB, reservationID uint) error {
	return tx.Where("reservation_id = ?", reservationID).Delete(&models.RoomHold{}).Error
}
