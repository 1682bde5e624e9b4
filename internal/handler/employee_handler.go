package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type EmployeeHandler struct {
	svc *service.EmployeeService
}

func NewEmployeeHandler(svc *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	emp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, emp)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	emp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, emp)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"q":       c.Query("q"),
		"setor":   c.Query("setor"),
		"vinculo": c.Query("vinculo"),
	}
	if raw := c.Query("ativo"); raw != "" {
		if ativo, err := strconv.ParseBool(raw); err == nil {
			filters["ativo"] = ativo
		}
	}
	emps, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": emps, "total": len(emps)})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	emp, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, emp)
}

func (h *EmployeeHandler) CreateRole(c *gin.Context) {
	var req service.JobRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	role, err := h.svc.CreateRole(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, role)
}

func (h *EmployeeHandler) ListRoles(c *gin.Context) {
	onlyActive := c.Query("ativas") != "false"
	roles, err := h.svc.ListRoles(c.Request.Context(), onlyActive)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": roles, "total": len(roles)})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
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
