package repository

import (
	"time"

	"urbanserv/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) GetByOrderID(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByOrderIDForUser(orderID, userID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.Where("order_id = ? AND user_id = ?", orderID, userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPaidGuard records a captured payment, but only while the record is still
// pending. A second capture of the same order affects zero rows.
func (r *PaymentRepository) MarkPaidGuard(tx *gorm.DB, orderID uint, gwOrderID, gwPaymentID, signature string, paidAt time.Time) (int64, error) {
	res := tx.Model(&entity.Payment{}).
		Where("order_id = ? AND payment_status = ?", orderID, entity.PaymentPending).
		Updates(map[string]any{
			"payment_status":     entity.PaymentPaid,
			"transaction_id":     gwPaymentID,
			"gateway_order_id":   gwOrderID,
			"gateway_payment_id": gwPaymentID,
			"gateway_signature":  signature,
			"payment_date":       paidAt,
		})
	return res.RowsAffected, res.Error
}

// MarkFailedGuard flags a failed attempt, only from pending. A failure event
// arriving after capture therefore cannot downgrade a paid record.
func (r *PaymentRepository) MarkFailedGuard(tx *gorm.DB, orderID uint, gwPaymentID string) (int64, error) {
	res := tx.Model(&entity.Payment{}).
		Where("order_id = ? AND payment_status = ?", orderID, entity.PaymentPending).
		Updates(map[string]any{
			"payment_status": entity.PaymentFailed,
			"transaction_id": gwPaymentID,
		})
	return res.RowsAffected, res.Error
}

// MarkRefundedGuard is refund bookkeeping on cancellation; legal from pending
// (COD, nothing collected yet) and from paid.
func (r *PaymentRepository) MarkRefundedGuard(tx *gorm.DB, orderID uint) (int64, error) {
	res := tx.Model(&entity.Payment{}).
		Where("order_id = ? AND payment_status IN ?", orderID,
			[]string{entity.PaymentPending, entity.PaymentPaid}).
		Update("payment_status", entity.PaymentRefunded)
	return res.RowsAffected, res.Error
}
