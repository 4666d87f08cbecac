package controllers

import (
	"errors"
	"net/http"

	"urbanserv/pkg/razorpay"
	"urbanserv/services"

	"github.com/gin-gonic/gin"
)

type WebhookController struct{ Svc *services.PaymentService }

func NewWebhookController(s *services.PaymentService) *WebhookController {
	return &WebhookController{Svc: s}
}

// POST /webhooks/razorpay
//
// The gateway redelivers on anything but 2xx, so after the signature check
// every outcome is acknowledged with 200.
func (h *WebhookController) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	err = h.Svc.HandleWebhook(body, c.GetHeader(razorpay.SignatureHeader))
	if errors.Is(err, services.ErrSignatureMismatch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
