package razorpay

import (
	"encoding/json"
	"fmt"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

// SignatureHeader carries the webhook signature.
const SignatureHeader = "X-Razorpay-Signature"

// Event is a webhook delivery. Only the payment payload is modelled; other
// event families are ignored upstream.
type Event struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity Payment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("razorpay: parse webhook event: %w", err)
	}
	return &ev, nil
}
