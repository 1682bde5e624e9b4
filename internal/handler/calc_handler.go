package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/calc"
)

// CalcHandler expõe os cálculos de massa e estimativas sem persistir nada.
type CalcHandler struct{}

func NewCalcHandler() *CalcHandler {
	return &CalcHandler{}
}

type massPerUnitRequest struct {
	Material    string  `json:"material" binding:"required"`
	EspessuraUm float64 `json:"espessura_um" binding:"required"`
	LarguraMm   float64 `json:"largura_mm" binding:"required"`
	AlturaMm    float64 `json:"altura_mm" binding:"required"`
	SanfonaMm   float64 `json:"sanfona_mm"`
	ExtraFactor float64 `json:"extra_factor"`
}

func (h *CalcHandler) MassPerUnit(c *gin.Context) {
	var req massPerUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	massa := calc.MassPerUnit(req.Material, req.EspessuraUm, req.LarguraMm,
		req.AlturaMm, req.SanfonaMm, req.ExtraFactor)
	Success(c, gin.H{
		"material":       req.Material,
		"densidade":      calc.Density(req.Material),
		"massa_unid_kg":  massa,
		"massa_unid_g":   massa * 1000,
	})
}

type unitsEstimateRequest struct {
	PesoKg      float64 `json:"peso_kg" binding:"required"`
	MassaUnidKg float64 `json:"massa_unid_kg" binding:"required"`
}

func (h *CalcHandler) UnitsEstimate(c *gin.Context) {
	var req unitsEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{
		"unidades_estimadas": calc.UnitsFromWeight(req.PesoKg, req.MassaUnidKg),
	})
}

type minUnitsRequest struct {
	QtdSolicitada int     `json:"qtd_solicitada" binding:"required"`
	TolerPercent  float64 `json:"toler_percent"`
}

func (h *CalcHandler) MinUnits(c *gin.Context) {
	var req minUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{
		"qtd_minima": calc.MinUnits(req.QtdSolicitada, req.TolerPercent),
	})
}
