package services

import (
	"errors"
	"log"
	"time"

	"urbanserv/entity"
	"urbanserv/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Payments *repository.PaymentRepository
}

func NewOrderService(db *gorm.DB, orders *repository.OrderRepository, payments *repository.PaymentRepository) *OrderService {
	return &OrderService{DB: db, Orders: orders, Payments: payments}
}

type OrderView struct {
	OrderID          uint               `json:"orderId"`
	OrderNo          int                `json:"orderNo"` // per-user sequence, newest = count
	UserName         string             `json:"userName"`
	UserEmail        string             `json:"userEmail"`
	UserPhone        string             `json:"userPhone"`
	UserAddress      string             `json:"userAddress"`
	TotalAmount      float64            `json:"totalAmount"`
	PaymentMode      string             `json:"paymentMode"`
	PaymentStatus    string             `json:"paymentStatus"`
	DeliveryLocation string             `json:"deliveryLocation"`
	Status           string             `json:"status"`
	CreatedAt        time.Time          `json:"createdAt"`
	DeliveryDate     *time.Time         `json:"deliveryDate,omitempty"`
	Items            []entity.OrderLine `json:"items"`
}

// History lists the user's orders, newest first.
func (s *OrderService) History(userID uint) ([]OrderView, error) {
	rows, err := s.Orders.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	out := make([]OrderView, 0, len(rows))
	for i, o := range rows {
		view, err := s.view(&o)
		if err != nil {
			return nil, err
		}
		view.OrderNo = len(rows) - i
		out = append(out, *view)
	}
	return out, nil
}

func (s *OrderService) Detail(userID, orderID uint) (*OrderView, error) {
	o, err := s.Orders.GetForUser(userID, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return s.view(o)
}

func (s *OrderService) view(o *entity.Order) (*OrderView, error) {
	lines, err := o.Lines()
	if err != nil {
		return nil, err
	}

	// every order gets its companion payment row at checkout; a missing row is
	// a data anomaly worth surfacing in the logs, a query failure is an error
	paymentStatus := entity.PaymentPending
	p, err := s.Payments.GetByOrderID(o.ID)
	switch {
	case err == nil:
		paymentStatus = p.PaymentStatus
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("order: no payment record for order %d", o.ID)
	default:
		return nil, err
	}

	return &OrderView{
		OrderID:          o.ID,
		UserName:         o.UserName,
		UserEmail:        o.UserEmail,
		UserPhone:        o.UserPhone,
		UserAddress:      o.UserAddress,
		TotalAmount:      o.TotalAmount,
		PaymentMode:      o.PaymentMode,
		PaymentStatus:    paymentStatus,
		DeliveryLocation: o.DeliveryLocation,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		DeliveryDate:     o.DeliveryDate,
		Items:            lines,
	}, nil
}

// Cancel is user-initiated and only legal while the order is still pending
// (COD awaiting fulfilment). Refund bookkeeping on the payment record is
// best-effort: a failure there is logged for reconciliation, not rolled into
// the cancellation.
func (s *OrderService) Cancel(userID, orderID uint) error {
	o, err := s.Orders.GetForUser(userID, orderID)
	if err != nil {
		return notFoundOr(err)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Orders.UpdateStatusGuard(tx, o.ID, entity.OrderPending, entity.OrderCancelled)
		if err != nil {
			return err
		}
		if n == 0 {
			current, err := s.Orders.Get(o.ID)
			if err != nil {
				return err
			}
			return &StateTransitionError{Current: current.Status}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := s.Payments.MarkRefundedGuard(s.DB, o.ID); err != nil {
		log.Printf("cancel: order %d cancelled but refund bookkeeping failed: %v", o.ID, err)
	}
	return nil
}
