package services

import (
	"errors"
	"fmt"
)

// Validation and state errors surface directly to the caller; they indicate a
// bad request or a stale client, never something worth retrying server-side.
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoResolvableItems = errors.New("no cart items resolve against the catalog")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrSignatureMismatch = errors.New("signature verification failed")
	ErrGatewayTimeout    = errors.New("payment gateway timed out")
	ErrNotFound          = errors.New("not found")
)

// GatewayError wraps any non-timeout failure of the payment gateway.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("gateway %s: %v", e.Op, e.Err) }
func (e *GatewayError) Unwrap() error { return e.Err }

// StateTransitionError rejects an illegal order status change and names the
// status the order is actually in.
type StateTransitionError struct {
	Current string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: order is %s", e.Current)
}
