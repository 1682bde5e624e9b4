package entity

// Nomes dos numeradores mantidos em numeradores.
const (
	SeqOrder      = "PED"
	SeqProdOrder  = "OP"
	SeqPrintOrder = "OI"
)

// Sequence é um contador nomeado para documentos sequenciais.
// Codes C-/P- são derivados pelo maior código existente, não por aqui.
type Sequence struct {
	Nome   string `json:"nome" gorm:"primaryKey;size:10"`
	Ultimo int64  `json:"ultimo" gorm:"not null;default:0"`
}

func (Sequence) TableName() string {
	return "numeradores"
}
