package services

import (
	"errors"
	"log"

	"urbanserv/entity"
	"urbanserv/repository"

	"gorm.io/gorm"
)

type CheckoutService struct {
	DB       *gorm.DB
	Users    *repository.UserRepository
	Cart     *repository.CartRepository
	Catalog  *CatalogService
	Orders   *repository.OrderRepository
	Payments *repository.PaymentRepository
}

func NewCheckoutService(
	db *gorm.DB,
	users *repository.UserRepository,
	cart *repository.CartRepository,
	catalog *CatalogService,
	orders *repository.OrderRepository,
	payments *repository.PaymentRepository,
) *CheckoutService {
	return &CheckoutService{DB: db, Users: users, Cart: cart, Catalog: catalog, Orders: orders, Payments: payments}
}

type CheckoutResult struct {
	OrderID     uint    `json:"orderId"`
	Total       float64 `json:"total"`
	PaymentMode string  `json:"paymentMode"`
	// true for online mode: the caller must continue into the payment sub-flow
	PaymentRequired bool `json:"paymentRequired"`
}

// InitiateCheckout converts the user's cart into an order with a snapshot of
// the resolved items, creates the companion pending payment, and empties the
// cart, all in one transaction. The cart is consumed at order creation, not
// at payment confirmation; abandoning an online payment leaves the order in
// pending_payment with an empty cart.
func (s *CheckoutService) InitiateCheckout(userID uint, paymentMode, deliveryLocation string) (*CheckoutResult, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	rows, err := s.Cart.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCart
	}

	// Price against the live catalog. Rows whose item no longer resolves are
	// dropped silently; the order carries only what could be priced.
	lines := make([]entity.OrderLine, 0, len(rows))
	var total float64
	for _, row := range rows {
		item, err := s.Catalog.Resolve(row.ItemType, row.ItemID)
		if errors.Is(err, ErrNotFound) {
			log.Printf("checkout: dropping unresolvable cart row user=%d %s/%d", userID, row.ItemType, row.ItemID)
			continue
		}
		if err != nil {
			return nil, err
		}
		lineTotal := item.UnitPrice * float64(row.Quantity)
		total += lineTotal
		lines = append(lines, entity.OrderLine{
			ItemType:    row.ItemType,
			ItemID:      row.ItemID,
			ItemName:    item.Name,
			ItemPhoto:   item.Photo,
			Description: item.Description,
			Quantity:    row.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
	}
	if len(lines) == 0 {
		return nil, ErrNoResolvableItems
	}

	snapshot, err := entity.MarshalLines(lines)
	if err != nil {
		return nil, err
	}

	status := entity.OrderPending
	if paymentMode == entity.PaymentModeOnline {
		status = entity.OrderPendingPayment
	}

	var out CheckoutResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			UserID:           userID,
			UserName:         user.FullName,
			UserEmail:        user.Email,
			UserPhone:        user.Phone,
			UserAddress:      user.Address,
			Items:            snapshot,
			TotalAmount:      total,
			PaymentMode:      paymentMode,
			DeliveryLocation: deliveryLocation,
			Status:           status,
		}
		if err := s.Orders.Create(tx, &order); err != nil {
			return err
		}

		payment := entity.Payment{
			OrderID:       order.ID,
			UserID:        userID,
			Amount:        total,
			PaymentMode:   paymentMode,
			PaymentStatus: entity.PaymentPending,
		}
		if err := s.Payments.Create(tx, &payment); err != nil {
			return err
		}

		if err := s.Cart.Clear(tx, userID); err != nil {
			return err
		}

		out = CheckoutResult{
			OrderID:         order.ID,
			Total:           total,
			PaymentMode:     paymentMode,
			PaymentRequired: paymentMode == entity.PaymentModeOnline,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
