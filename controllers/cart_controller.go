package controllers

import (
	"errors"
	"strconv"

	"urbanserv/pkg/resp"
	"urbanserv/services"
	"urbanserv/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	rows, subtotal, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rows, "subtotal": subtotal})
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req struct {
		ItemType string `json:"itemType" binding:"required,oneof=service menu"`
		ItemID   uint   `json:"itemId" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.Add(utils.CurrentUserID(c), req.ItemType, req.ItemID, req.Quantity); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "item not available")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

// PATCH /cart/items/:id
func (h *CartController) UpdateQuantity(c *gin.Context) {
	rowID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.UpdateQuantity(utils.CurrentUserID(c), uint(rowID), req.Quantity); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "cart item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /cart/items/:id
func (h *CartController) Remove(c *gin.Context) {
	rowID, _ := strconv.Atoi(c.Param("id"))
	if err := h.Svc.Remove(utils.CurrentUserID(c), uint(rowID)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentUserID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
