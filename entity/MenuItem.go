package entity

import (
	"gorm.io/gorm"
)

// MenuItem is a food-delivery catalog row.
type MenuItem struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Photo       string  `json:"photo"`
	Price       float64 `gorm:"not null" json:"price"`
	Status      string  `gorm:"not null;default:active" json:"status"`
}
