package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation is a guest's claim on a room for a date range. Status moves
// only through BookingService; see status.go for the legal transitions.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	CustomerID    uint   `gorm:"index;column:customer_id" json:"customer_id"`
	RoomID        uint   `gorm:"index;column:room_id" json:"room_id"`
	RoomType      string `gorm:"column:room_type;size:64" json:"room_type"`

	Status string `gorm:"column:status;size:32;index" json:"status"`

	// Planned stay, dates at midnight UTC. CheckOut is exclusive.
	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	// Set exactly once by the CheckIn / CheckOut operations.
	ActualCheckIn  *time.Time `gorm:"column:actual_check_in" json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `gorm:"column:actual_check_out" json:"actual_check_out,omitempty"`

	AssignedRoomNumber string `gorm:"column:assigned_room_number;size:50" json:"assigned_room_number,omitempty"`

	// TotalPrice is the room charge for the whole stay, fixed at creation.
	TotalPrice float64 `gorm:"column:total_price" json:"total_price"`

	Customer Customer  `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Room     Room      `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Charges  []Charge  `gorm:"foreignKey:ReservationID" json:"charges"`
	Payment  *Payment  `gorm:"foreignKey:ReservationID" json:"payment,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:ReservationID" json:"invoices"`
}

// ChargesTotal sums the ad-hoc charges recorded during the stay.
func (r *Reservation) ChargesTotal() float64 {
	var sum float64
	for _, c := range r.Charges {
		sum += c.Amount
	}
	return sum
}

// Charge is an ad-hoc service charge appended while a guest is checked in
// (minibar, laundry, room service). Immutable once written.
type Charge struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"index;column:reservation_id" json:"reservation_id"`
	Description   string    `gorm:"column:description;size:255" json:"description"`
	Amount        float64   `gorm:"column:amount" json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}
