package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	// preload only when needed
	Orders   []Order    `json:"-"`
	CartRows []CartItem `gorm:"foreignKey:UserID" json:"-"`
}
