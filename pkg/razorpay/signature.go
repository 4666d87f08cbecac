package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment computes the checkout signature the gateway sends back to the
// client after a successful payment: HMAC-SHA256 over "orderID|paymentID".
func SignPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature checks a client-callback signature. Constant time.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	expected := SignPayment(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyPaymentSignature on the client uses the API key secret, which is what
// the gateway signs client callbacks with.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(orderID, paymentID, signature, c.keySecret)
}

// SignWebhook computes the webhook signature over the exact raw body.
func SignWebhook(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw request body. This is the sole authentication of the webhook endpoint.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	expected := SignWebhook(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
