package repository

import (
	"errors"

	"urbanserv/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) ListForUser(userID uint) ([]entity.CartItem, error) {
	var rows []entity.CartItem
	err := r.DB.Where("user_id = ?", userID).Order("id").Find(&rows).Error
	return rows, err
}

// FindEntry returns the user's row for (itemType, itemID), or nil when absent.
// Reads through tx so a merge-on-add sees its own transaction's state.
func (r *CartRepository) FindEntry(tx *gorm.DB, userID uint, itemType string, itemID uint) (*entity.CartItem, error) {
	var row entity.CartItem
	err := tx.Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CartRepository) GetForUser(tx *gorm.DB, userID, rowID uint) (*entity.CartItem, error) {
	var row entity.CartItem
	if err := tx.Where("id = ? AND user_id = ?", rowID, userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CartRepository) Create(tx *gorm.DB, row *entity.CartItem) error {
	return tx.Create(row).Error
}

func (r *CartRepository) UpdateQuantity(tx *gorm.DB, rowID uint, qty int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", rowID).
		Update("quantity", qty).Error
}

// IncrementQuantity adds delta in a single UPDATE, so concurrent merges never
// lose an increment to a stale read.
func (r *CartRepository) IncrementQuantity(tx *gorm.DB, rowID uint, delta int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", rowID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// Cart rows are hard-deleted. A soft delete would keep the removed row inside
// the (user_id, item_type, item_id) unique index and block re-adding the item.
func (r *CartRepository) Remove(tx *gorm.DB, userID, rowID uint) error {
	return tx.Unscoped().Where("id = ? AND user_id = ?", rowID, userID).
		Delete(&entity.CartItem{}).Error
}

// Clear drops every row of the user's cart.
func (r *CartRepository) Clear(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}
