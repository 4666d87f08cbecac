package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment is the 1:1 companion of an Order. It exists from order creation for
// both payment modes; COD simply stays pending until fulfilment.
type Payment struct {
	gorm.Model
	OrderID uint  `gorm:"not null;uniqueIndex" json:"orderId"`
	Order   Order `json:"-"`
	UserID  uint  `gorm:"not null;index" json:"userId"`

	Amount        float64 `gorm:"not null" json:"amount"`
	PaymentMode   string  `gorm:"not null" json:"paymentMode"`
	PaymentStatus string  `gorm:"not null" json:"paymentStatus"`

	TransactionID    string     `json:"transactionId"`
	GatewayOrderID   string     `json:"gatewayOrderId"`
	GatewayPaymentID string     `json:"gatewayPaymentId"`
	GatewaySignature string     `json:"-"`
	PaymentDate      *time.Time `json:"paymentDate,omitempty"`
}
