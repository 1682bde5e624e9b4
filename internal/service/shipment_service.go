package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

// ShipmentService registra expedições e a liberação do romaneio.
type ShipmentService struct {
	repo      *repository.ShipmentRepository
	orderRepo *repository.OrderRepository
	auditRepo *repository.AuditLogRepository
}

func NewShipmentService(repo *repository.ShipmentRepository, orderRepo *repository.OrderRepository, auditRepo *repository.AuditLogRepository) *ShipmentService {
	return &ShipmentService{repo: repo, orderRepo: orderRepo, auditRepo: auditRepo}
}

type CreateShipmentRequest struct {
	Modal            *string                `json:"modal"`
	Transportadora   *string                `json:"transportadora"`
	Destino          *string                `json:"destino"`
	DataSaida        *string                `json:"data_saida"`
	VeiculoMotorista *string                `json:"veiculo_motorista"`
	VeiculoPlaca     *string                `json:"veiculo_placa"`
	RotaBairros      *string                `json:"rota_bairros"`
	Romaneio         map[string]interface{} `json:"romaneio"`
}

// Create abre a expedição em PENDENTE. Pedido em RASCUNHO ou CANCELADO
// não expede; o vínculo sai como SHIPMENT_ADDED na auditoria.
func (s *ShipmentService) Create(ctx context.Context, pedidoID uint, userID *uint, req *CreateShipmentRequest) (*entity.Shipment, error) {
	if req.Modal == nil {
		return nil, invalidField("modal", "obrigatório")
	}
	switch *req.Modal {
	case entity.ModalCarrier, entity.ModalOwnVehicle:
	default:
		return nil, invalidField("modal", "modal inválido")
	}

	var shipment *entity.Shipment
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID)
		if err != nil {
			return err
		}
		if order.Status == entity.OrderStatusDraft || order.Status == entity.OrderStatusCancelled {
			return ErrOrderNotApproved
		}

		pid := pedidoID
		shipment = &entity.Shipment{
			PedidoID:         &pid,
			Modal:            req.Modal,
			Transportadora:   req.Transportadora,
			Destino:          req.Destino,
			DataSaida:        req.DataSaida,
			VeiculoMotorista: req.VeiculoMotorista,
			VeiculoPlaca:     req.VeiculoPlaca,
			RotaBairros:      req.RotaBairros,
			Romaneio:         entity.JSONB(req.Romaneio),
			Status:           entity.ShipmentPending,
		}
		if err := s.repo.CreateTx(ctx, tx, shipment); err != nil {
			return fmt.Errorf("create shipment: %w", err)
		}
		return s.auditRepo.AppendTx(ctx, tx, &entity.AuditLog{
			PedidoID: pedidoID,
			UserID:   userID,
			Acao:     entity.AuditShipmentAdded,
			Detalhe:  entity.JSONB{"expedicao_id": shipment.ID},
		})
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *ShipmentService) Get(ctx context.Context, id uint) (*entity.Shipment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ShipmentService) ListByOrder(ctx context.Context, pedidoID uint) ([]entity.Shipment, error) {
	if _, err := s.orderRepo.FindByID(ctx, pedidoID); err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, pedidoID)
}

func (s *ShipmentService) List(ctx context.Context, filters map[string]interface{}) ([]entity.Shipment, error) {
	return s.repo.List(ctx, filters)
}

// Release libera a expedição para saída. Só PENDENTE libera.
func (s *ShipmentService) Release(ctx context.Context, id uint) (*entity.Shipment, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment.Status != entity.ShipmentPending {
		return nil, invalidField("status", "expedição já liberada")
	}
	shipment.Status = entity.ShipmentReleased
	shipment.Pedido = nil
	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}
