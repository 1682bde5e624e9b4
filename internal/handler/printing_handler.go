package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type PrintingHandler struct {
	svc *service.PrintingService
}

func NewPrintingHandler(svc *service.PrintingService) *PrintingHandler {
	return &PrintingHandler{svc: svc}
}

// Create abre uma ordem de impressão para o pedido.
func (h *PrintingHandler) Create(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.CreatePrintingOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	oi, err := h.svc.Create(c.Request.Context(), pedidoID, GetUserID(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, oi)
}

func (h *PrintingHandler) ListByOrder(c *gin.Context) {
	pedidoID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	ois, err := h.svc.ListByOrder(c.Request.Context(), pedidoID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": ois, "total": len(ois)})
}

func (h *PrintingHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	oi, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, oi)
}

type printingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PrintingHandler) SetStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req printingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	oi, err := h.svc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, oi)
}

// ReceiveRoll registra uma bobina impressa recebida, com o movimento de
// ENTRADA no estoque.
func (h *PrintingHandler) ReceiveRoll(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.ReceiveRollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	roll, err := h.svc.ReceiveRoll(c.Request.Context(), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, roll)
}

func (h *PrintingHandler) ListRolls(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	rolls, err := h.svc.ListRolls(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": rolls, "total": len(rolls)})
}

// CutSealEligibility responde se a OI tem bobina aprovada no QC2 com
// saldo suficiente para abastecer o corte & solda.
func (h *PrintingHandler) CutSealEligibility(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	pesoMin := 0.0
	if raw := c.Query("peso_min_kg"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			BadRequest(c, "peso_min_kg inválido")
			return
		}
		pesoMin = v
	}
	eligible, rolls, err := h.svc.CutSealEligibility(c.Request.Context(), id, pesoMin)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"elegivel": eligible, "bobinas": rolls})
}

type rollQCRequest struct {
	Status   string   `json:"status" binding:"required"`
	SucataKg *float64 `json:"sucata_kg"`
	Motivo   *string  `json:"motivo"`
}

func (h *PrintingHandler) SetRollQC(c *gin.Context) {
	rollID, ok := ParamID(c, "rollId")
	if !ok {
		return
	}
	var req rollQCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	roll, err := h.svc.SetRollQC(c.Request.Context(), rollID, req.Status, req.SucataKg, req.Motivo)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, roll)
}

func (h *PrintingHandler) RollBalance(c *gin.Context) {
	rollID, ok := ParamID(c, "rollId")
	if !ok {
		return
	}
	saldo, err := h.svc.RollBalance(c.Request.Context(), rollID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"bobina_id": rollID, "saldo_kg": saldo})
}

func (h *PrintingHandler) ListMoves(c *gin.Context) {
	rollID, ok := ParamID(c, "rollId")
	if !ok {
		return
	}
	moves, err := h.svc.ListMoves(c.Request.Context(), rollID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": moves, "total": len(moves)})
}
