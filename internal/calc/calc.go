// Package calc estima massas e quantidades de embalagens flexíveis
// a partir das dimensões e do material do filme.
package calc

import (
	"math"
	"strconv"
	"strings"
)

// Densidades típicas em kg/m³, valores médios para estimativa.
var densities = map[string]float64{
	"PEBD": 920,
	"LDPE": 920,
	"PEAD": 950,
	"HDPE": 950,
	"PE":   930,
	"PP":   905,
	"BOPP": 905,
	"PET":  1380,
	"PVC":  1380,
	"PA":   1140,
	"EVOH": 1200,
}

var materialAlias = map[string]string{
	"LDPE":               "PEBD",
	"HDPE":               "PEAD",
	"POLIETILENO BAIXA":  "PEBD",
	"POLIETILENO ALTA":   "PEAD",
	"POLIPROPILENO":      "PP",
	"NYLON":              "PA",
}

const defaultDensity = 920 // PEBD

// Density devolve a densidade do material em kg/m³, com fallback em PEBD.
func Density(material string) float64 {
	m := normalizeMaterial(material)
	if d, ok := densities[m]; ok {
		return d
	}
	return defaultDensity
}

func normalizeMaterial(material string) string {
	m := strings.ToUpper(strings.TrimSpace(material))
	if _, ok := densities[m]; ok {
		return m
	}
	if base, ok := materialAlias[m]; ok {
		return base
	}
	return m
}

// ParseDecimal aceita vírgula ou ponto como separador decimal.
// Entrada inválida ou vazia vira o default informado.
func ParseDecimal(s string, def float64) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func nonneg(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// MassPerUnit estima a massa (kg) de uma unidade de embalagem.
// A largura efetiva soma duas vezes a sanfona; espessura em µm.
// extraFactor é um percentual adicional (0.05 = +5%) para reforços
// ou perdas. Valores negativos são tratados como zero.
func MassPerUnit(material string, espUm, larguraMm, alturaMm, sanfonaMm float64, extraFactor float64) float64 {
	dens := Density(material)

	espUm = nonneg(espUm)
	larguraMm = nonneg(larguraMm)
	alturaMm = nonneg(alturaMm)
	sanfonaMm = nonneg(sanfonaMm)
	if extraFactor < 0 {
		extraFactor = 0
	}

	larguraEfetivaMm := larguraMm + 2*sanfonaMm
	areaM2 := larguraEfetivaMm * alturaMm / 1e6
	espM := espUm / 1e6

	massa := areaM2 * espM * dens
	return massa * (1 + extraFactor)
}

// UnitsFromWeight estima quantas unidades cabem num peso líquido.
// Massa unitária não positiva devolve zero.
func UnitsFromWeight(pesoKg, massaUnidKg float64) float64 {
	pesoKg = nonneg(pesoKg)
	if massaUnidKg <= 0 {
		return 0
	}
	return pesoKg / massaUnidKg
}

// MinUnits aplica a margem de tolerância sobre a quantidade pedida.
// Tolerância é limitada ao intervalo [0, 100].
func MinUnits(qtdSolicitada int, tolerPercent float64) int {
	if qtdSolicitada < 0 {
		qtdSolicitada = 0
	}
	if tolerPercent < 0 {
		tolerPercent = 0
	} else if tolerPercent > 100 {
		tolerPercent = 100
	}
	minimo := int(math.Round(float64(qtdSolicitada) * (1 - tolerPercent/100)))
	if minimo < 0 {
		return 0
	}
	return minimo
}
