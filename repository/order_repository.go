package repository

import (
	"time"

	"urbanserv/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var rows []entity.Order
	err := r.DB.Where("user_id = ?", userID).Order("id DESC").Find(&rows).Error
	return rows, err
}

// UpdateStatusGuard moves the order from one status to another only when the
// current status still matches. Returns rows affected; 0 means the order was
// not in `from` (conflict or stale caller), never a partial write.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetDeliveryDate(tx *gorm.DB, orderID uint, at time.Time) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("delivery_date", at).Error
}
