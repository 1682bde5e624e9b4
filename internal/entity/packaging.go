package entity

import "time"

// Tipos de fita de fechamento
const (
	TapeNone    = "nenhuma"
	TapeSimple  = "simples"
	TapeDouble  = "dupla"
)

// PackagingSpec é o cadastro mestre de embalagens (embalagem_master).
// A unicidade de (embalagem_code, rev) com rev nulo tratado como vazio
// é garantida por índice de expressão criado em Bootstrap.
type PackagingSpec struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	EmbalagemCode       string     `json:"embalagem_code" gorm:"size:40;not null;index"`
	Rev                 *string    `json:"rev" gorm:"size:10"`
	ClienteID           *uint      `json:"cliente_id" gorm:"index"`
	Material            string     `json:"material" gorm:"size:20;not null"`
	EspessuraUm         *int       `json:"espessura_um"`
	LarguraMm           *int       `json:"largura_mm"`
	AlturaMm            *int       `json:"altura_mm"`
	SanfonaMm           int        `json:"sanfona_mm" gorm:"not null;default:0"`
	AbaMm               int        `json:"aba_mm" gorm:"not null;default:0"`
	FitaTipo            string     `json:"fita_tipo" gorm:"size:12;not null;default:nenhuma"`
	Tratamento          bool       `json:"tratamento" gorm:"default:false"`
	TratamentoDinas     *int       `json:"tratamento_dinas"`
	Impresso            bool       `json:"impresso" gorm:"not null;default:false"`
	LayoutPng           *string    `json:"layout_png" gorm:"size:255"`
	Transparencia       *int       `json:"transparencia"`
	ResistenciaMecanica *string    `json:"resistencia_mecanica" gorm:"size:40"`
	Vendido             bool       `json:"vendido" gorm:"not null;default:false"`
	NCM                 *string    `json:"ncm" gorm:"size:8"`
	Observacoes         *string    `json:"observacoes" gorm:"type:text"`
	CreatedAt           time.Time  `json:"created_at"`

	Cliente *Client `json:"cliente,omitempty" gorm:"foreignKey:ClienteID"`
}

func (PackagingSpec) TableName() string {
	return "embalagem_master"
}
