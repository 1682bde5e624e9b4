package entity

import "time"

// OrderStatus — ciclo de vida do pedido
const (
	OrderStatusDraft      = "RASCUNHO"
	OrderStatusApproved   = "APROVADO"
	OrderStatusPlanned    = "PLANEJADO"
	OrderStatusInProgress = "EM_EXECUCAO"
	OrderStatusCompleted  = "CONCLUIDO"
	OrderStatusCancelled  = "CANCELADO"
)

// QuantityUnit — unidade de venda
const (
	QtyUnitPieces = "UN"
	QtyUnitKilos  = "KG"
)

// Order é o pedido de venda (pedido).
type Order struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	ClienteID    *uint   `json:"cliente_id" gorm:"index"`
	NumeroPedido string  `json:"numero_pedido" gorm:"size:20;uniqueIndex"`
	DataEmissao  string  `json:"data_emissao" gorm:"size:10"`
	DataPrevista *string `json:"data_prevista" gorm:"size:10"`

	QuantidadeTipo     string   `json:"quantidade_tipo" gorm:"size:4;not null;default:UN"`
	Status             string   `json:"status" gorm:"size:20;not null;default:RASCUNHO;index"`
	PrecoTotal         *float64 `json:"preco_total" gorm:"type:decimal(14,2)"`
	PrecoBase          *float64 `json:"preco_base" gorm:"type:decimal(14,4)"`
	QuantidadePlanejada *float64 `json:"quantidade_planejada" gorm:"type:decimal(14,4)"`
	MargemTolerPercent float64  `json:"margem_toler_percent" gorm:"type:decimal(6,2);default:0"`
	NCM                *string  `json:"ncm" gorm:"size:8"`
	EmbalagemCode      *string  `json:"embalagem_code" gorm:"size:40"`

	// Campos comerciais
	RepresentanteID      *uint   `json:"representante_id"`
	RepresentanteNome    *string `json:"representante_nome" gorm:"size:120"`
	RegimeVenda          *string `json:"regime_venda" gorm:"size:40"`
	ComissaoPercent      *float64 `json:"comissao_percent" gorm:"type:decimal(6,2)"`
	CondicoesComerciais  *string `json:"condicoes_comerciais" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cliente *Client     `json:"cliente,omitempty" gorm:"foreignKey:ClienteID"`
	Itens   []OrderItem `json:"itens,omitempty" gorm:"foreignKey:PedidoID"`
	Logs    []AuditLog  `json:"logs,omitempty" gorm:"foreignKey:PedidoID"`
}

func (Order) TableName() string {
	return "pedidos"
}

// PrintStatus do item dentro do pedido
const (
	ItemPrintDraft      = "rascunho"
	ItemPrintPending    = "pendente"
	ItemPrintInProcess  = "em_processo"
	ItemPrintDone       = "concluida"
)

// OrderItem é uma linha do pedido com snapshot técnico da embalagem
// capturado no momento da inserção. Campos snapshot_* nunca mudam depois.
type OrderItem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	PedidoID  uint   `json:"pedido_id" gorm:"not null;index"`
	EmbalagemCode string  `json:"embalagem_code" gorm:"size:40;index"`
	Rev           *string `json:"rev" gorm:"size:10"`
	Descricao     string  `json:"descricao" gorm:"size:200"`

	Qtd                float64  `json:"qtd" gorm:"type:decimal(14,4)"`
	QtdTipo            string   `json:"qtd_tipo" gorm:"size:4;default:UN"`
	PrecoUnit          *float64 `json:"preco_unit" gorm:"type:decimal(14,4)"`
	PrecoKg            *float64 `json:"preco_kg" gorm:"type:decimal(14,4)"`
	PesoUnitKg         *float64 `json:"peso_unit_kg" gorm:"type:decimal(12,6)"`
	MargemTolerPercent *float64 `json:"margem_toler_percent" gorm:"type:decimal(6,2)"`

	SnapshotMaterial    string `json:"snapshot_material" gorm:"size:40"`
	SnapshotEspessuraUm *int   `json:"snapshot_espessura_um"`
	SnapshotLarguraMm   *int   `json:"snapshot_largura_mm"`
	SnapshotAlturaMm    *int   `json:"snapshot_altura_mm"`
	SnapshotSanfonaMm   int    `json:"snapshot_sanfona_mm" gorm:"default:0"`
	SnapshotAbaMm       int    `json:"snapshot_aba_mm" gorm:"default:0"`
	SnapshotFitaTipo    string `json:"snapshot_fita_tipo" gorm:"size:20"`
	SnapshotImpresso    bool   `json:"snapshot_impresso"`

	AnelExtrusao    *string  `json:"anel_extrusao" gorm:"size:40"`
	StatusImpressao string   `json:"status_impressao" gorm:"size:20;default:rascunho"`
	Extrusado       bool     `json:"extrusado"`
	QtdeExtrusadaKg *float64 `json:"qtde_extrusada_kg" gorm:"type:decimal(12,4)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "pedido_itens"
}

// Ações registradas em pedido_logs
const (
	AuditCreated       = "CREATED"
	AuditUpdated       = "UPDATED"
	AuditItemAdded     = "ITEM_ADDED"
	AuditItemUpdated   = "ITEM_UPDATED"
	AuditItemDeleted   = "ITEM_DELETED"
	AuditStatusChanged = "STATUS_CHANGED"
	AuditOPCreated     = "OP_CREATED"
	AuditOICreated     = "OI_CREATED"
	AuditQCAdded       = "QC_ADDED"
	AuditShipmentAdded = "SHIPMENT_ADDED"
	AuditRecalcTotal   = "RECALC_TOTAL"
)

// AuditLog é o trilho append-only do pedido. A ordem de leitura é sempre
// id ASC (ordem de inserção), nunca por timestamp.
type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PedidoID  uint      `json:"pedido_id" gorm:"not null;index"`
	UserID    *uint     `json:"user_id"`
	Acao      string    `json:"acao" gorm:"size:30;not null"`
	Detalhe   JSONB     `json:"detalhe_json" gorm:"column:detalhe_json;type:jsonb"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "pedido_logs"
}
