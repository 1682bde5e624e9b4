package entity

import "time"

// Status de expedição
const (
	ShipmentPending  = "PENDENTE"
	ShipmentReleased = "LIBERADA"
)

// Modais de transporte
const (
	ModalCarrier    = "transportadora"
	ModalOwnVehicle = "veiculo_proprio"
)

// Shipment é a expedição de um pedido, com romaneio em JSON.
type Shipment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	PedidoID         *uint     `json:"pedido_id" gorm:"index"`
	Modal            *string   `json:"modal" gorm:"size:20"`
	Transportadora   *string   `json:"transportadora" gorm:"size:120"`
	Destino          *string   `json:"destino" gorm:"size:160"`
	DataSaida        *string   `json:"data_saida" gorm:"size:10"`
	VeiculoMotorista *string   `json:"veiculo_motorista" gorm:"size:120"`
	VeiculoPlaca     *string   `json:"veiculo_placa" gorm:"size:10"`
	RotaBairros      *string   `json:"rota_bairros" gorm:"size:200"`
	ComprovantePath  *string   `json:"comprovante_path" gorm:"size:255"`
	Romaneio         JSONB     `json:"romaneio" gorm:"column:romaneio_json;type:jsonb"`
	Status           string    `json:"status" gorm:"size:12;default:PENDENTE"`
	CreatedAt        time.Time `json:"created_at"`

	Pedido *Order `json:"pedido,omitempty" gorm:"foreignKey:PedidoID"`
}

func (Shipment) TableName() string {
	return "expedicoes"
}
