package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type PartnerHandler struct {
	svc *service.PartnerService
}

func NewPartnerHandler(svc *service.PartnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

func (h *PartnerHandler) Create(c *gin.Context) {
	var req service.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	partner, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, partner)
}

func (h *PartnerHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	partner, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, partner)
}

func (h *PartnerHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"q":    c.Query("q"),
		"tipo": c.Query("tipo"),
	}
	if raw := c.Query("ativo"); raw != "" {
		if ativo, err := strconv.ParseBool(raw); err == nil {
			filters["ativo"] = ativo
		}
	}
	partners, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": partners, "total": len(partners)})
}

func (h *PartnerHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	partner, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, partner)
}

func (h *PartnerHandler) BackfillCodes(c *gin.Context) {
	n, err := h.svc.BackfillCodes(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"atualizados": n})
}

func (h *PartnerHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": id})
}
