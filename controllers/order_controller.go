package controllers

import (
	"errors"
	"strconv"

	"urbanserv/pkg/resp"
	"urbanserv/services"
	"urbanserv/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// GET /orders
func (h *OrderController) History(c *gin.Context) {
	orders, err := h.Svc.History(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	order, err := h.Svc.Detail(utils.CurrentUserID(c), uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	err := h.Svc.Cancel(utils.CurrentUserID(c), uint(orderID))
	if err != nil {
		var stateErr *services.StateTransitionError
		switch {
		case errors.Is(err, services.ErrNotFound):
			resp.NotFound(c, "order not found")
		case errors.As(err, &stateErr):
			resp.Conflict(c, stateErr.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}
