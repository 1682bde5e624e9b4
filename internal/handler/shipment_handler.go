package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type ShipmentHandler struct {
	svc *service.ShipmentService
}

func NewShipmentHandler(svc *service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{svc: svc}
}

func (h *ShipmentHandler) Create(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	shp, err := h.svc.Create(c.Request.Context(), pedidoID, GetUserID(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, shp)
}

func (h *ShipmentHandler) ListByOrder(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	shps, err := h.svc.ListByOrder(c.Request.Context(), pedidoID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": shps, "total": len(shps)})
}

func (h *ShipmentHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"status": c.Query("status"),
	}
	if raw := c.Query("pedido_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filters["pedido_id"] = uint(id)
		}
	}
	shps, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": shps, "total": len(shps)})
}

func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	shp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, shp)
}

// Release libera a expedição para faturamento.
func (h *ShipmentHandler) Release(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	shp, err := h.svc.Release(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, shp)
}
