package entity

import (
	"gorm.io/gorm"
)

const (
	ItemTypeService = "service"
	ItemTypeMenu    = "menu"
)

// CartItem is one pending selection of a user. At most one row exists per
// (user, item type, item); adding the same item again increments Quantity.
type CartItem struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"userId"`
	ItemType string `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"itemType"`
	ItemID   uint   `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"itemId"`
	Quantity int    `gorm:"not null" json:"quantity"`

	User User `json:"-"`
}
