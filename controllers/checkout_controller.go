package controllers

import (
	"errors"
	"fmt"

	"urbanserv/pkg/resp"
	"urbanserv/services"
	"urbanserv/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ Svc *services.CheckoutService }

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: s}
}

type CheckoutRequest struct {
	PaymentMode      string `json:"payment_mode" binding:"required,oneof=cod online"`
	DeliveryLocation string `json:"delivery_location" binding:"required"`
}

// POST /checkout
//
// COD ends here and points the caller at order history; online answers with
// the order id and the payment sub-flow to continue into.
func (h *CheckoutController) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Flow(c, false, "payment mode and delivery location are required", "", nil)
		return
	}

	result, err := h.Svc.InitiateCheckout(utils.CurrentUserID(c), req.PaymentMode, req.DeliveryLocation)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			resp.Flow(c, false, "your cart is empty", "", nil)
		case errors.Is(err, services.ErrNoResolvableItems):
			resp.Flow(c, false, "none of the cart items are available anymore", "", nil)
		default:
			resp.ServerError(c, err)
		}
		return
	}

	if result.PaymentRequired {
		resp.Flow(c, true, "", fmt.Sprintf("/payment/%d", result.OrderID), gin.H{
			"order_id": result.OrderID,
			"total":    result.Total,
		})
		return
	}
	resp.Flow(c, true, "order placed, pay when delivered", "/orders", gin.H{
		"order_id": result.OrderID,
		"total":    result.Total,
	})
}
