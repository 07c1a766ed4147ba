package services

import (
	"encoding/json"
	"fmt"

	"hotelops-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordTransition writes an audit row for a reservation status change in
// the same transaction as the change itself, so the trail can never show a
// transition that was rolled back.
func recordTransition(tx *gorm.DB, reservationID uint, from, to, reason string, details map[string]interface{}) error {
	entry := models.AuditLog{
		ReservationID: reservationID,
		FromStatus:    from,
		ToStatus:      to,
		Reason:        reason,
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
		entry.Details = datatypes.JSON(raw)
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// AuditTrail returns the recorded transitions for a reservation, oldest
// first.
func AuditTrail(db *gorm.DB, reservationID uint) ([]models.AuditLog, error) {
	var trail []models.AuditLog
	if err := db.Where("reservation_id = ?", reservationID).Order("id ASC").Find(&trail).Error; err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return trail, nil
}
