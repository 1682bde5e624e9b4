package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type ClientHandler struct {
	svc *service.ClientService
}

func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	client, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	client, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"q":      c.Query("q"),
		"estado": c.Query("estado"),
	}
	clients, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": clients, "total": len(clients)})
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	client, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, client)
}

// BackfillCodes atribui codigo_interno aos clientes antigos sem código.
func (h *ClientHandler) BackfillCodes(c *gin.Context) {
	n, err := h.svc.BackfillCodes(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"atualizados": n})
}

func (h *ClientHandler) Delete(c *gin.Context) {
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
