package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

// ProductionService emite ordens de produção de corte e solda e recebe
// os apontamentos de consumo. A primeira OP de um pedido APROVADO puxa
// o pedido para EM_EXECUCAO automaticamente.
type ProductionService struct {
	repo         *repository.ProductionRepository
	orderRepo    *repository.OrderRepository
	printingRepo *repository.PrintingRepository
	seqRepo      *repository.SequenceRepository
	auditRepo    *repository.AuditLogRepository
}

func NewProductionService(
	repo *repository.ProductionRepository,
	orderRepo *repository.OrderRepository,
	printingRepo *repository.PrintingRepository,
	seqRepo *repository.SequenceRepository,
	auditRepo *repository.AuditLogRepository,
) *ProductionService {
	return &ProductionService{
		repo:         repo,
		orderRepo:    orderRepo,
		printingRepo: printingRepo,
		seqRepo:      seqRepo,
		auditRepo:    auditRepo,
	}
}

type CreateProductionOrderRequest struct {
	LarguraMm           *int     `json:"largura_mm"`
	AlturaMm            *int     `json:"altura_mm"`
	SanfonaMm           *int     `json:"sanfona_mm"`
	AbaMm               *int     `json:"aba_mm"`
	FitaTipo            *string  `json:"fita_tipo"`
	ResistenciaMecanica *string  `json:"resistencia_mecanica"`
	TempSoldaC          *float64 `json:"temp_solda_c"`
	VelocidadeCorteCpm  *float64 `json:"velocidade_corte_cpm"`
	PesoMinBobinaKg     *float64 `json:"peso_min_bobina_kg"`
	MargemErroUnPercent *float64 `json:"margem_erro_un_percent"`
}

// Create abre a OP. Pedido precisa estar APROVADO, PLANEJADO ou já
// EM_EXECUCAO; se for a primeira OP de um pedido ainda não em execução,
// o status avança com STATUS_CHANGED marcado como automático.
func (s *ProductionService) Create(ctx context.Context, pedidoID uint, userID *uint, req *CreateProductionOrderRequest) (*entity.ProductionOrder, error) {
	var op *entity.ProductionOrder
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID)
		if err != nil {
			return err
		}
		switch order.Status {
		case entity.OrderStatusApproved, entity.OrderStatusPlanned, entity.OrderStatusInProgress:
		default:
			return ErrOrderNotApproved
		}

		n, err := s.seqRepo.NextNumber(ctx, tx, entity.SeqProdOrder)
		if err != nil {
			return fmt.Errorf("next OP number: %w", err)
		}
		pid := pedidoID
		op = &entity.ProductionOrder{
			PedidoID:            &pid,
			Numero:              fmt.Sprintf("OP-%06d", n),
			LarguraMm:           req.LarguraMm,
			AlturaMm:            req.AlturaMm,
			SanfonaMm:           req.SanfonaMm,
			AbaMm:               req.AbaMm,
			FitaTipo:            req.FitaTipo,
			ResistenciaMecanica: req.ResistenciaMecanica,
			TempSoldaC:          req.TempSoldaC,
			VelocidadeCorteCpm:  req.VelocidadeCorteCpm,
			PesoMinBobinaKg:     req.PesoMinBobinaKg,
			MargemErroUnPercent: req.MargemErroUnPercent,
			Status:              entity.ProdOrderOpen,
		}
		if err := s.repo.CreateTx(ctx, tx, op); err != nil {
			return fmt.Errorf("create production order: %w", err)
		}
		if err := s.auditRepo.AppendTx(ctx, tx, &entity.AuditLog{
			PedidoID: pedidoID,
			UserID:   userID,
			Acao:     entity.AuditOPCreated,
			Detalhe:  entity.JSONB{"ordem_producao_id": op.ID, "numero": op.Numero},
		}); err != nil {
			return err
		}

		if order.Status != entity.OrderStatusInProgress {
			total, err := s.repo.CountByOrderTx(ctx, tx, pedidoID)
			if err != nil {
				return err
			}
			if total == 1 {
				if err := s.orderRepo.UpdateColumnsTx(ctx, tx, pedidoID,
					map[string]interface{}{"status": entity.OrderStatusInProgress}); err != nil {
					return fmt.Errorf("auto advance status: %w", err)
				}
				if err := s.auditRepo.AppendTx(ctx, tx, &entity.AuditLog{
					PedidoID: pedidoID,
					UserID:   userID,
					Acao:     entity.AuditStatusChanged,
					Detalhe:  entity.JSONB{"de": order.Status, "para": entity.OrderStatusInProgress, "auto": true},
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (s *ProductionService) Get(ctx context.Context, id uint) (*entity.ProductionOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductionService) ListByOrder(ctx context.Context, pedidoID uint) ([]entity.ProductionOrder, error) {
	if _, err := s.orderRepo.FindByID(ctx, pedidoID); err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, pedidoID)
}

var prodOrderStatuses = map[string]bool{
	entity.ProdOrderOpen:       true,
	entity.ProdOrderInProgress: true,
	entity.ProdOrderInspection: true,
	entity.ProdOrderDone:       true,
	entity.ProdOrderCancelled:  true,
}

func (s *ProductionService) SetStatus(ctx context.Context, id uint, status string) (*entity.ProductionOrder, error) {
	if !prodOrderStatuses[status] {
		return nil, invalidField("status", "status inválido")
	}
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	op.Status = status
	op.Apontamentos = nil
	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

type AddReadingRequest struct {
	BobinaImpressaID *uint    `json:"bobina_impressa_id"`
	PesoConsumidoKg  *float64 `json:"peso_consumido_kg"`
	PesoSaidaKg      *float64 `json:"peso_saida_kg"`
	SucataKg         *float64 `json:"sucata_kg"`
	SucataMotivo     *string  `json:"sucata_motivo"`
}

// AddReading aponta consumo da OP. Quando a bobina de origem vem no
// apontamento, o peso consumido vira uma SAIDA de estoque na mesma
// transação.
func (s *ProductionService) AddReading(ctx context.Context, ordemProducaoID uint, req *AddReadingRequest) (*entity.ProductionReading, error) {
	if req.PesoConsumidoKg != nil && *req.PesoConsumidoKg < 0 {
		return nil, invalidField("peso_consumido_kg", "não pode ser negativo")
	}

	var reading *entity.ProductionReading
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		var op entity.ProductionOrder
		if err := tx.WithContext(ctx).First(&op, "id = ?", ordemProducaoID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return repository.ErrNotFound
			}
			return err
		}
		if op.Status == entity.ProdOrderCancelled || op.Status == entity.ProdOrderDone {
			return invalidField("ordem_producao_id", "OP não aceita apontamentos nesse status")
		}

		reading = &entity.ProductionReading{
			OrdemProducaoID:  ordemProducaoID,
			BobinaImpressaID: req.BobinaImpressaID,
			PesoConsumidoKg:  req.PesoConsumidoKg,
			PesoSaidaKg:      req.PesoSaidaKg,
			SucataKg:         req.SucataKg,
			SucataMotivo:     req.SucataMotivo,
		}
		if err := s.repo.CreateReadingTx(ctx, tx, reading); err != nil {
			return fmt.Errorf("create reading: %w", err)
		}

		if req.BobinaImpressaID != nil && req.PesoConsumidoKg != nil && *req.PesoConsumidoKg > 0 {
			ref := op.Numero
			if err := s.printingRepo.CreateMoveTx(ctx, tx, &entity.RollStockMove{
				BobinaImpressaID: *req.BobinaImpressaID,
				Tipo:             entity.RollMoveOut,
				QtdKg:            *req.PesoConsumidoKg,
				Referencia:       &ref,
			}); err != nil {
				return fmt.Errorf("stock move: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *ProductionService) ListReadings(ctx context.Context, ordemProducaoID uint) ([]entity.ProductionReading, error) {
	return s.repo.ListReadings(ctx, ordemProducaoID)
}
