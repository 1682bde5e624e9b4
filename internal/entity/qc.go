package entity

import "time"

// Tipos de inspeção de qualidade
const (
	QCTypeIncoming = "QC1" // bobina crua no recebimento
	QCTypePrinted  = "QC2" // bobina impressa
	QCTypeFinished = "QC3" // produto acabado
	QCTypeShipment = "QC4" // conferência pré-expedição
)

// Resultados de inspeção
const (
	QCResultApproved    = "APROVADO"
	QCResultRejected    = "REPROVADO"
	QCResultConditional = "CONDICIONAL"
)

// QCInspection é um registro de inspeção apontando para a entidade
// inspecionada via (tipo, referencia_id).
type QCInspection struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Tipo         string    `json:"tipo" gorm:"size:8;not null;index"`
	ReferenciaID uint      `json:"referencia_id" gorm:"not null;index"`
	Amostra      *string   `json:"amostra" gorm:"size:60"`
	Resultado    string    `json:"resultado" gorm:"size:12;not null"`
	Observacoes  *string   `json:"observacoes" gorm:"type:text"`
	Fotos        JSONBArray `json:"fotos" gorm:"column:fotos_json;type:jsonb"`
	CreatedAt    time.Time `json:"created_at"`
}

func (QCInspection) TableName() string {
	return "qc_inspecoes"
}
