package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type PackagingHandler struct {
	svc *service.PackagingService
}

func NewPackagingHandler(svc *service.PackagingService) *PackagingHandler {
	return &PackagingHandler{svc: svc}
}

func (h *PackagingHandler) Create(c *gin.Context) {
	var req service.CreatePackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	spec, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, spec)
}

func (h *PackagingHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	spec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, spec)
}

func (h *PackagingHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"q":        c.Query("q"),
		"material": c.Query("material"),
	}
	if raw := c.Query("cliente_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filters["cliente_id"] = uint(id)
		}
	}
	if raw := c.Query("vendido"); raw != "" {
		if vendido, err := strconv.ParseBool(raw); err == nil {
			filters["vendido"] = vendido
		}
	}
	specs, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": specs, "total": len(specs)})
}

// Revisions lista todas as revisões de um embalagem_code.
func (h *PackagingHandler) Revisions(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		BadRequest(c, "code obrigatório")
		return
	}
	specs, err := h.svc.Revisions(c.Request.Context(), code)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": specs, "total": len(specs)})
}

func (h *PackagingHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.UpdatePackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	spec, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, spec)
}

func (h *PackagingHandler) Delete(c *gin.Context) {
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
