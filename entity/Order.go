package entity

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	OrderPendingPayment = "pending_payment"
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderProcessing     = "processing"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

const (
	PaymentModeCOD    = "cod"
	PaymentModeOnline = "online"
)

// OrderLine is one snapshotted line of an order. Captured at checkout time;
// later catalog edits never touch it.
type OrderLine struct {
	ItemType    string  `json:"item_type"`
	ItemID      uint    `json:"item_id"`
	ItemName    string  `json:"item_name"`
	ItemPhoto   string  `json:"item_photo"`
	Description string  `json:"item_description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"price"`
	LineTotal   float64 `json:"total"`
}

type Order struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `json:"-"`

	// contact snapshot at order time
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	UserPhone   string `json:"userPhone"`
	UserAddress string `json:"userAddress"`

	Items            string     `gorm:"not null" json:"-"` // JSON []OrderLine
	TotalAmount      float64    `gorm:"not null" json:"totalAmount"`
	PaymentMode      string     `gorm:"not null" json:"paymentMode"`
	DeliveryLocation string     `gorm:"not null" json:"deliveryLocation"`
	Status           string     `gorm:"not null;index" json:"status"`
	DeliveryDate     *time.Time `json:"deliveryDate,omitempty"`

	Payment *Payment `gorm:"foreignKey:OrderID" json:"-"`
}

func (o *Order) Lines() ([]OrderLine, error) {
	var lines []OrderLine
	if err := json.Unmarshal([]byte(o.Items), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func MarshalLines(lines []OrderLine) (string, error) {
	b, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
