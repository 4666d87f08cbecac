package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"urbanserv/entity"
	"urbanserv/pkg/razorpay"
	"urbanserv/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService drives the online-payment sub-flow: intent creation against
// the gateway, client-callback verification, and webhook reconciliation. Both
// confirmation paths funnel into the same guarded transition, so duplicate or
// racing confirmations collapse into no-ops.
type PaymentService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Payments *repository.PaymentRepository
	Gateway  *razorpay.Client
}

func NewPaymentService(db *gorm.DB, orders *repository.OrderRepository, payments *repository.PaymentRepository, gw *razorpay.Client) *PaymentService {
	return &PaymentService{DB: db, Orders: orders, Payments: payments, Gateway: gw}
}

// ToMinorUnits converts decimal currency units to integer minor units (rupees
// to paise). Amounts with fractional paise are rejected rather than rounded
// away, so the conversion is exact for every accepted input.
func ToMinorUnits(amount float64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	scaled := amount * 100
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, ErrInvalidAmount
	}
	return int64(rounded), nil
}

type IntentResult struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"` // minor units
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// CreateIntent creates the remote payment intent for an order. No local state
// changes here; the returned intent id is validated later during verification.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, orderID uint) (*IntentResult, error) {
	order, err := s.Orders.GetForUser(userID, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	paise, err := ToMinorUnits(order.TotalAmount)
	if err != nil {
		return nil, err
	}

	// notes are the only linkage the webhook path has back to local records
	notes := map[string]string{
		"order_id":  strconv.FormatUint(uint64(order.ID), 10),
		"user_id":   strconv.FormatUint(uint64(order.UserID), 10),
		"user_name": order.UserName,
	}
	receipt := "rcpt_" + uuid.NewString()

	intent, err := s.Gateway.CreateOrder(ctx, paise, "INR", receipt, notes)
	if err != nil {
		return nil, wrapGateway("create intent", err)
	}

	return &IntentResult{
		GatewayOrderID: intent.ID,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		KeyID:          s.Gateway.KeyID,
	}, nil
}

// VerifyPayment is the client-driven confirmation path. It fails closed on a
// bad signature, cross-checks the live payment with the gateway, then applies
// the shared confirm transition. Verifying an already-paid order succeeds as
// a no-op.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID, orderID uint, gwOrderID, gwPaymentID, signature string) error {
	if !s.Gateway.VerifyPaymentSignature(gwOrderID, gwPaymentID, signature) {
		log.Printf("payment: signature mismatch order=%d gateway_order=%s gateway_payment=%s", orderID, gwOrderID, gwPaymentID)
		return ErrSignatureMismatch
	}

	payment, err := s.Payments.GetByOrderIDForUser(orderID, userID)
	if err != nil {
		return notFoundOr(err)
	}
	if payment.PaymentStatus == entity.PaymentPaid {
		return nil // already confirmed by the webhook or an earlier call
	}

	// a well-signed but stale payload still has to match the gateway's view
	live, err := s.Gateway.FetchPayment(ctx, gwPaymentID)
	if err != nil {
		return wrapGateway("fetch payment", err)
	}
	if live.Status != "captured" && live.Status != "authorized" {
		return &GatewayError{Op: "fetch payment", Err: fmt.Errorf("unexpected payment status %q", live.Status)}
	}

	return s.confirm(orderID, gwOrderID, gwPaymentID, signature)
}

// HandleWebhook is the authoritative, asynchronous confirmation path. The
// caller passes the exact raw body plus the signature header. Errors after
// authentication are logged and swallowed so the gateway stops redelivering.
func (s *PaymentService) HandleWebhook(rawBody []byte, signature string) error {
	if !razorpay.VerifyWebhookSignature(rawBody, signature, s.Gateway.WebhookSecret) {
		log.Printf("webhook: signature mismatch, body length %d", len(rawBody))
		return ErrSignatureMismatch
	}

	ev, err := razorpay.ParseEvent(rawBody)
	if err != nil {
		log.Printf("webhook: %v", err)
		return nil
	}

	pay := ev.Payload.Payment.Entity
	orderID, userID, ok := parseNotes(pay.Notes)

	switch ev.Event {
	case razorpay.EventPaymentCaptured:
		if !ok {
			log.Printf("webhook: captured event without usable notes, gateway_payment=%s", pay.ID)
			return nil
		}
		if err := s.confirm(orderID, pay.OrderID, pay.ID, ""); err != nil {
			log.Printf("webhook: confirm order=%d user=%d: %v", orderID, userID, err)
		}
	case razorpay.EventPaymentFailed:
		if !ok {
			log.Printf("webhook: failed event without usable notes, gateway_payment=%s", pay.ID)
			return nil
		}
		// payment record only; the order stays pending_payment for a retry
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			n, err := s.Payments.MarkFailedGuard(tx, orderID, pay.ID)
			if err != nil {
				return err
			}
			if n == 0 {
				log.Printf("webhook: failure event ignored, payment for order %d is no longer pending", orderID)
			}
			return nil
		})
		if err != nil {
			log.Printf("webhook: mark failed order=%d: %v", orderID, err)
		}
	default:
		// other event families are acknowledged and ignored
	}
	return nil
}

// confirm is the single idempotent confirm transition shared by the verify
// call and the webhook. Both tables move under expected-prior-state guards;
// whichever confirmation lands second affects zero rows and no-ops.
func (s *PaymentService) confirm(orderID uint, gwOrderID, gwPaymentID, signature string) error {
	now := time.Now()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		paid, err := s.Payments.MarkPaidGuard(tx, orderID, gwOrderID, gwPaymentID, signature, now)
		if err != nil {
			return err
		}

		confirmed, err := s.Orders.UpdateStatusGuard(tx, orderID, entity.OrderPendingPayment, entity.OrderConfirmed)
		if err != nil {
			return err
		}
		if confirmed == 0 {
			// COD order settled online ahead of fulfilment
			if confirmed, err = s.Orders.UpdateStatusGuard(tx, orderID, entity.OrderPending, entity.OrderConfirmed); err != nil {
				return err
			}
		}

		if paid == 0 && confirmed == 0 {
			p, err := s.Payments.GetByOrderID(orderID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// unknown order: acknowledge so the gateway stops retrying
				log.Printf("payment: confirmation for unknown order %d (gateway_payment=%s)", orderID, gwPaymentID)
				return nil
			}
			if err != nil {
				return err
			}
			if p.PaymentStatus == entity.PaymentPaid {
				return nil // duplicate delivery, nothing to do
			}
			return &StateTransitionError{Current: p.PaymentStatus}
		}
		return nil
	})
}

// Status reports the reconciliation state of an order's payment.
type PaymentStatusResult struct {
	OrderStatus   string     `json:"orderStatus"`
	PaymentStatus string     `json:"paymentStatus"`
	TransactionID string     `json:"transactionId,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
}

func (s *PaymentService) Status(userID, orderID uint) (*PaymentStatusResult, error) {
	order, err := s.Orders.GetForUser(userID, orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	payment, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &PaymentStatusResult{
		OrderStatus:   order.Status,
		PaymentStatus: payment.PaymentStatus,
		TransactionID: payment.TransactionID,
		PaymentDate:   payment.PaymentDate,
	}, nil
}

func parseNotes(notes map[string]string) (orderID, userID uint, ok bool) {
	o, err1 := strconv.ParseUint(notes["order_id"], 10, 32)
	u, err2 := strconv.ParseUint(notes["user_id"], 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return uint(o), uint(u), true
}

func wrapGateway(op string, err error) error {
	if errors.Is(err, razorpay.ErrTimeout) {
		return fmt.Errorf("%s: %w", op, ErrGatewayTimeout)
	}
	return &GatewayError{Op: op, Err: err}
}
