package models

import "time"

// RoomHold commits one room for one night on behalf of a reservation.
// The composite unique index on (room_id, stay_date) is what actually
// prevents double booking: two transactions inserting holds for the same
// room and night race at the database, and the loser gets a duplicate-key
// error that the booking service reports as a room conflict. The pre-check
// in AvailabilityService exists only to produce a friendly message.
//
// Holds are deleted when a reservation is cancelled or rejected. They are
// kept for checked-out stays so past occupancy stays on record.
type RoomHold struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RoomID        uint      `gorm:"column:room_id;uniqueIndex:idx_room_night" json:"room_id"`
	StayDate      time.Time `gorm:"column:stay_date;uniqueIndex:idx_room_night" json:"stay_date"`
	ReservationID uint      `gorm:"index;column:reservation_id" json:"reservation_id"`
	CreatedAt     time.Time `json:"created_at"`
}
