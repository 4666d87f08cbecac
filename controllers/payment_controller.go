package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"urbanserv/pkg/resp"
	"urbanserv/services"
	"urbanserv/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: s}
}

// POST /payments/intent
func (h *PaymentController) CreateIntent(c *gin.Context) {
	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := h.Svc.CreateIntent(c.Request.Context(), utils.CurrentUserID(c), req.OrderID)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /payments/verify
func (h *PaymentController) Verify(c *gin.Context) {
	var req struct {
		OrderID          uint   `json:"order_id" binding:"required"`
		GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
		GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		GatewaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	err := h.Svc.VerifyPayment(c.Request.Context(), utils.CurrentUserID(c), req.OrderID,
		req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	resp.OK(c, gin.H{"verified": true, "order_id": req.OrderID})
}

// GET /orders/:id/payment-status
func (h *PaymentController) Status(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	out, err := h.Svc.Status(utils.CurrentUserID(c), uint(orderID))
	if err != nil {
		writePaymentError(c, err)
		return
	}
	resp.OK(c, out)
}

func writePaymentError(c *gin.Context, err error) {
	var stateErr *services.StateTransitionError
	var gwErr *services.GatewayError
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "order not found")
	case errors.Is(err, services.ErrInvalidAmount):
		resp.BadRequest(c, "invalid amount")
	case errors.Is(err, services.ErrSignatureMismatch):
		resp.BadRequest(c, "invalid payment signature")
	case errors.Is(err, services.ErrGatewayTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"ok": false, "error": "payment gateway timed out"})
	case errors.As(err, &gwErr):
		resp.BadGateway(c, gwErr.Error())
	case errors.As(err, &stateErr):
		resp.Conflict(c, stateErr.Error())
	default:
		resp.ServerError(c, err)
	}
}
