package entity

import "time"

// Status de ordem de impressão
const (
	PrintOrderOpen       = "ABERTA"
	PrintOrderInProgress = "EM_EXECUCAO"
	PrintOrderDone       = "CONCLUIDA"
	PrintOrderCancelled  = "CANCELADA"
)

// Tipos de movimento do estoque de bobinas impressas
const (
	RollMoveIn     = "ENTRADA"
	RollMoveOut    = "SAIDA"
	RollMoveAdjust = "AJUSTE"
)

// Resultado QC2 de bobina impressa
const (
	QC2Approved = "APROVADA"
	QC2Rejected = "REPROVADA"
	QC2Pending  = "PENDENTE"
)

// PrintingOrder é a ordem de impressão (OI) vinculada a um pedido aprovado.
type PrintingOrder struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	PedidoID               *uint     `json:"pedido_id" gorm:"index"`
	Numero                 string    `json:"numero" gorm:"size:20;uniqueIndex"`
	BobinaCruaLote         *string   `json:"bobina_crua_lote" gorm:"size:40"`
	Cores                  *string   `json:"cores" gorm:"size:60"`
	TintaTipo              *string   `json:"tinta_tipo" gorm:"size:40"`
	ClicheRef              *string   `json:"cliche_ref" gorm:"size:40"`
	VelocidadeAlvoMpm      *float64  `json:"velocidade_alvo_mpm"`
	PerdasPrevistasPercent *float64  `json:"perdas_previstas_percent"`
	RegistroTolerMm        *float64  `json:"registro_toler_mm"`
	Status                 string    `json:"status" gorm:"size:16;default:ABERTA"`
	CreatedAt              time.Time `json:"created_at"`

	Pedido  *Order        `json:"pedido,omitempty" gorm:"foreignKey:PedidoID"`
	Bobinas []PrintedRoll `json:"bobinas,omitempty" gorm:"foreignKey:OrdemImpressaoID"`
}

func (PrintingOrder) TableName() string {
	return "ordens_impressao"
}

// PrintedRoll é uma bobina recebida da impressão. PesoLiquidoKg é coluna
// gerada no banco, somente leitura no ORM.
type PrintedRoll struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OrdemImpressaoID uint      `json:"ordem_impressao_id" gorm:"not null;index"`
	BobinaCruaID     *uint     `json:"bobina_crua_id"`
	Etiqueta         *string   `json:"etiqueta" gorm:"size:40"`
	LarguraMm        *int      `json:"largura_mm"`
	PesoBrutoKg      *float64  `json:"peso_bruto_kg"`
	TaraTuboKg       *float64  `json:"tara_tubo_kg"`
	TaraEmbalagemKg  *float64  `json:"tara_embalagem_kg"`
	PesoLiquidoKg    float64   `json:"peso_liquido_kg" gorm:"->;type:numeric GENERATED ALWAYS AS (COALESCE(peso_bruto_kg,0) - COALESCE(tara_tubo_kg,0) - COALESCE(tara_embalagem_kg,0)) STORED"`
	SucataKg         *float64  `json:"sucata_kg"`
	SucataMotivo     *string   `json:"sucata_motivo" gorm:"size:120"`
	QC2Status        *string   `json:"qc2_status" gorm:"column:qc2_status;size:12"`
	LocalEstoque     *string   `json:"local_estoque" gorm:"size:40"`
	CreatedAt        time.Time `json:"created_at"`
}

func (PrintedRoll) TableName() string {
	return "bobinas_impressas"
}

// RollStockMove registra entradas e saídas de bobinas impressas em estoque.
type RollStockMove struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	BobinaImpressaID  uint      `json:"bobina_impressa_id" gorm:"column:bobinas_impressa_id;not null;index"`
	Tipo              string    `json:"tipo" gorm:"size:10;not null"`
	QtdKg             float64   `json:"qtd_kg"`
	Referencia        *string   `json:"referencia" gorm:"size:60"`
	CreatedAt         time.Time `json:"created_at"`
}

func (RollStockMove) TableName() string {
	return "estoque_bobinas_impressas_mov"
}
