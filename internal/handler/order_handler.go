package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"q":      c.Query("q"),
		"status": c.Query("status"),
	}
	if raw := c.Query("cliente_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filters["cliente_id"] = uint(id)
		}
	}
	orders, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": orders, "total": len(orders)})
}

// Update aceita um patch parcial; os campos permitidos dependem do
// status do pedido.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.Update(c.Request.Context(), id, GetUserID(c), fields)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, order)
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.ChangeStatus(c.Request.Context(), id, GetUserID(c), req.Status)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, order)
}

func (h *OrderHandler) Logs(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	logs, err := h.svc.Logs(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": logs, "total": len(logs)})
}

func (h *OrderHandler) Metrics(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	metrics, err := h.svc.Metrics(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, metrics)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.AddItem(c.Request.Context(), id, GetUserID(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, item)
}

func (h *OrderHandler) UpdateItem(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := ParamID(c, "itemId")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.UpdateItem(c.Request.Context(), id, itemID, GetUserID(c), fields)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, item)
}

func (h *OrderHandler) DeleteItem(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := ParamID(c, "itemId")
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), id, itemID, GetUserID(c)); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": itemID})
}
