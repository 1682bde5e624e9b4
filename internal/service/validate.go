package service

import "strings"

// Unidades federativas válidas
var brUFs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// onlyDigits descarta máscara (pontos, traços, barras) da entrada.
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validNCM(ncm string) bool {
	return len(ncm) == 8 && allDigits(ncm)
}

func validCNPJ(cnpj string) bool {
	return len(cnpj) == 14 && allDigits(cnpj)
}

func validCPF(cpf string) bool {
	return len(cpf) == 11 && allDigits(cpf)
}

func validCEP(cep string) bool {
	return len(cep) == 8 && allDigits(cep)
}

func validUF(uf string) bool {
	return brUFs[strings.ToUpper(uf)]
}
