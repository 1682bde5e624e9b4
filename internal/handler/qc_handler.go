package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type QCHandler struct {
	svc *service.QCService
}

func NewQCHandler(svc *service.QCService) *QCHandler {
	return &QCHandler{svc: svc}
}

func (h *QCHandler) AddForOrder(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.AddInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	insp, err := h.svc.AddForOrder(c.Request.Context(), pedidoID, GetUserID(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, insp)
}

func (h *QCHandler) ListForOrder(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	insps, err := h.svc.ListForOrder(c.Request.Context(), pedidoID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": insps, "total": len(insps)})
}

func (h *QCHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"tipo":      c.Query("tipo"),
		"resultado": c.Query("resultado"),
	}
	insps, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": insps, "total": len(insps)})
}

func (h *QCHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	insp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, insp)
}
