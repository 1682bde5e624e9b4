package calc

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMassPerUnit(t *testing.T) {
	// Saco PEBD 300x400mm, 50µm, sem sanfona:
	// area = 0.3*0.4 = 0.12 m², esp = 50e-6 m, dens = 920
	got := MassPerUnit("PEBD", 50, 300, 400, 0, 0)
	want := 0.12 * 50e-6 * 920
	if !almostEqual(got, want) {
		t.Fatalf("MassPerUnit = %v, want %v", got, want)
	}

	// Sanfona entra duas vezes na largura efetiva.
	got = MassPerUnit("PEBD", 50, 300, 400, 50, 0)
	want = (0.4 * 0.4) * 50e-6 * 920
	if !almostEqual(got, want) {
		t.Fatalf("MassPerUnit com sanfona = %v, want %v", got, want)
	}

	// Fator extra de 5%.
	base := MassPerUnit("PP", 40, 200, 300, 0, 0)
	boosted := MassPerUnit("PP", 40, 200, 300, 0, 0.05)
	if !almostEqual(boosted, base*1.05) {
		t.Fatalf("fator extra: got %v, want %v", boosted, base*1.05)
	}

	// Dimensões negativas viram zero.
	if got := MassPerUnit("PEBD", -10, 300, 400, 0, 0); got != 0 {
		t.Fatalf("espessura negativa deveria zerar a massa, got %v", got)
	}
}

func TestDensityAliases(t *testing.T) {
	cases := []struct {
		material string
		want     float64
	}{
		{"PEBD", 920},
		{"ldpe", 920},
		{"HDPE", 950},
		{"polipropileno", 905},
		{"NYLON", 1140},
		{"  pet ", 1380},
		{"desconhecido", 920},
		{"", 920},
	}
	for _, c := range cases {
		if got := Density(c.material); got != c.want {
			t.Errorf("Density(%q) = %v, want %v", c.material, got, c.want)
		}
	}
}

func TestUnitsFromWeight(t *testing.T) {
	if got := UnitsFromWeight(10, 0.01); !almostEqual(got, 1000) {
		t.Fatalf("UnitsFromWeight = %v, want 1000", got)
	}
	if got := UnitsFromWeight(10, 0); got != 0 {
		t.Fatalf("massa unitária zero deveria devolver 0, got %v", got)
	}
	if got := UnitsFromWeight(-5, 0.01); got != 0 {
		t.Fatalf("peso negativo deveria devolver 0, got %v", got)
	}
}

func TestMinUnits(t *testing.T) {
	if got := MinUnits(1000, 5); got != 950 {
		t.Fatalf("MinUnits(1000, 5) = %d, want 950", got)
	}
	if got := MinUnits(1000, 0); got != 1000 {
		t.Fatalf("MinUnits(1000, 0) = %d, want 1000", got)
	}
	if got := MinUnits(1000, 150); got != 0 {
		t.Fatalf("tolerância acima de 100 capa em 100%%, got %d", got)
	}
	if got := MinUnits(-10, 5); got != 0 {
		t.Fatalf("quantidade negativa vira 0, got %d", got)
	}
	if got := MinUnits(3, 10); got != 3 {
		t.Fatalf("MinUnits(3, 10) = %d, want 3 (round)", got)
	}
}

func TestParseDecimal(t *testing.T) {
	if got := ParseDecimal("12,5", 0); !almostEqual(got, 12.5) {
		t.Fatalf("ParseDecimal vírgula = %v", got)
	}
	if got := ParseDecimal("12.5", 0); !almostEqual(got, 12.5) {
		t.Fatalf("ParseDecimal ponto = %v", got)
	}
	if got := ParseDecimal("", 7); got != 7 {
		t.Fatalf("vazio deveria usar o default, got %v", got)
	}
	if got := ParseDecimal("abc", 3); got != 3 {
		t.Fatalf("inválido deveria usar o default, got %v", got)
	}
}
