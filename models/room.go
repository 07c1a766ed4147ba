package models

import (
	"gorm.io/gorm"
)

// Room is the catalog entry the availability engine books against. RoomNumber
// is the canonical key used everywhere; display strings are never parsed to
// recover identity.
type Room struct {
	gorm.Model

	RoomTypeID *uint  `json:"RoomTypeID,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Floor        string  `json:"floor" gorm:"type:varchar(10)"`
	Price        float64 `json:"price"`
	MaxOccupancy int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string  `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID"`
}
