package controllers

import (
	"urbanserv/pkg/resp"
	"urbanserv/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct{ Svc *services.CatalogService }

func NewCatalogController(s *services.CatalogService) *CatalogController {
	return &CatalogController{Svc: s}
}

// GET /services
func (h *CatalogController) ListServices(c *gin.Context) {
	rows, err := h.Svc.ListServices()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"services": rows})
}

// GET /menu
func (h *CatalogController) ListMenu(c *gin.Context) {
	rows, err := h.Svc.ListMenu()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"menu": rows})
}

// POST /catalog/refresh
//
// Drops the resolver cache after catalog edits.
func (h *CatalogController) Refresh(c *gin.Context) {
	h.Svc.Invalidate()
	resp.OK(c, gin.H{"refreshed": true})
}
