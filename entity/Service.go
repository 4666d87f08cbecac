package entity

import (
	"gorm.io/gorm"
)

// Service is a bookable home-service catalog row.
type Service struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Photo       string  `json:"photo"`
	Price       float64 `gorm:"not null" json:"price"`
	Status      string  `gorm:"not null;default:active" json:"status"`
}
