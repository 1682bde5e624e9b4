package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type ProductionHandler struct {
	svc *service.ProductionService
}

func NewProductionHandler(svc *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// Create abre uma ordem de produção para o pedido. A primeira OP de um
// pedido aprovado empurra o status para EM_EXECUCAO.
func (h *ProductionHandler) Create(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.CreateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	op, err := h.svc.Create(c.Request.Context(), pedidoID, GetUserID(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, op)
}

func (h *ProductionHandler) ListByOrder(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	ops, err := h.svc.ListByOrder(c.Request.Context(), pedidoID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": ops, "total": len(ops)})
}

func (h *ProductionHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	op, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, op)
}

type productionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ProductionHandler) SetStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req productionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	op, err := h.svc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, op)
}

func (h *ProductionHandler) AddReading(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.AddReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	reading, err := h.svc.AddReading(c.Request.Context(), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, reading)
}

func (h *ProductionHandler) ListReadings(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	readings, err := h.svc.ListReadings(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": readings, "total": len(readings)})
}
