// models/customer.go
package models

import (
	"gorm.io/gorm"
)

// Customer is the owning guest of a reservation. Identity management lives
// in the user directory collaborator; we only keep the reference data the
// booking engine needs.
type Customer struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}
