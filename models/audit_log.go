package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records every reservation state transition, written inside the
// same transaction as the transition itself.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	ReservationID uint   `gorm:"index;column:reservation_id" json:"reservation_id"`
	FromStatus    string `gorm:"column:from_status;size:32" json:"from_status"`
	ToStatus      string `gorm:"column:to_status;size:32" json:"to_status"`
	Reason        string `gorm:"column:reason;size:255" json:"reason,omitempty"`

	Details datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
}
