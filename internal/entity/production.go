package entity

import "time"

// Status de ordem de produção (corte e solda)
const (
	ProdOrderOpen       = "ABERTA"
	ProdOrderInProgress = "EM_EXECUCAO"
	ProdOrderInspection = "EM_INSPECAO"
	ProdOrderDone       = "CONCLUIDA"
	ProdOrderCancelled  = "CANCELADA"
)

// ProductionOrder é a ordem de produção (OP) de corte e solda.
type ProductionOrder struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	PedidoID            *uint     `json:"pedido_id" gorm:"index"`
	Numero              string    `json:"numero" gorm:"size:20;uniqueIndex"`
	LarguraMm           *int      `json:"largura_mm"`
	AlturaMm            *int      `json:"altura_mm"`
	SanfonaMm           *int      `json:"sanfona_mm"`
	AbaMm               *int      `json:"aba_mm"`
	FitaTipo            *string   `json:"fita_tipo" gorm:"size:12"`
	ResistenciaMecanica *string   `json:"resistencia_mecanica" gorm:"size:40"`
	TempSoldaC          *float64  `json:"temp_solda_c"`
	VelocidadeCorteCpm  *float64  `json:"velocidade_corte_cpm"`
	PesoMinBobinaKg     *float64  `json:"peso_min_bobina_kg"`
	MargemErroUnPercent *float64  `json:"margem_erro_un_percent"`
	Status              string    `json:"status" gorm:"size:16;default:ABERTA"`
	CreatedAt           time.Time `json:"created_at"`

	Pedido       *Order              `json:"pedido,omitempty" gorm:"foreignKey:PedidoID"`
	Apontamentos []ProductionReading `json:"apontamentos,omitempty" gorm:"foreignKey:OrdemProducaoID"`
}

func (ProductionOrder) TableName() string {
	return "ordens_producao"
}

// ProductionReading é um apontamento de consumo e saída de uma OP.
type ProductionReading struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OrdemProducaoID  uint      `json:"ordem_producao_id" gorm:"not null;index"`
	BobinaImpressaID *uint     `json:"bobina_impressa_id" gorm:"index"`
	PesoConsumidoKg  *float64  `json:"peso_consumido_kg"`
	PesoSaidaKg      *float64  `json:"peso_saida_kg"`
	SucataKg         *float64  `json:"sucata_kg"`
	SucataMotivo     *string   `json:"sucata_motivo" gorm:"size:120"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ProductionReading) TableName() string {
	return "producao_apontamentos"
}
