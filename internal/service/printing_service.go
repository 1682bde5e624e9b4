package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

// PrintingService emite ordens de impressão e recebe bobinas impressas,
// alimentando o estoque por movimentos de ENTRADA e SAIDA.
type PrintingService struct {
	repo      *repository.PrintingRepository
	orderRepo *repository.OrderRepository
	seqRepo   *repository.SequenceRepository
	auditRepo *repository.AuditLogRepository
}

func NewPrintingService(
	repo *repository.PrintingRepository,
	orderRepo *repository.OrderRepository,
	seqRepo *repository.SequenceRepository,
	auditRepo *repository.AuditLogRepository,
) *PrintingService {
	return &PrintingService{repo: repo, orderRepo: orderRepo, seqRepo: seqRepo, auditRepo: auditRepo}
}

type CreatePrintingOrderRequest struct {
	BobinaCruaLote         *string  `json:"bobina_crua_lote"`
	Cores                  *string  `json:"cores"`
	TintaTipo              *string  `json:"tinta_tipo"`
	ClicheRef              *string  `json:"cliche_ref"`
	VelocidadeAlvoMpm      *float64 `json:"velocidade_alvo_mpm"`
	PerdasPrevistasPercent *float64 `json:"perdas_previstas_percent"`
	RegistroTolerMm        *float64 `json:"registro_toler_mm"`
}

// Create abre uma OI para o pedido. Exige pedido aprovado (ou adiante no
// ciclo) e ao menos um item impresso no snapshot; o número OI-%06d sai
// do numerador na mesma transação do INSERT.
func (s *PrintingService) Create(ctx context.Context, pedidoID uint, userID *uint, req *CreatePrintingOrderRequest) (*entity.PrintingOrder, error) {
	var oi *entity.PrintingOrder
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

		items, err := s.orderRepo.ListItemsTx(ctx, tx, pedidoID)
		if err != nil {
			return err
		}
		hasPrinted := false
		for _, it := range items {
			if it.SnapshotImpresso {
				hasPrinted = true
				break
			}
		}
		if !hasPrinted {
			return invalidField("pedido_id", "pedido não tem itens impressos")
		}

		n, err := s.seqRepo.NextNumber(ctx, tx, entity.SeqPrintOrder)
		if err != nil {
			return fmt.Errorf("next OI number: %w", err)
		}
		pid := pedidoID
		oi = &entity.PrintingOrder{
			PedidoID:               &pid,
			Numero:                 fmt.Sprintf("OI-%06d", n),
			BobinaCruaLote:         req.BobinaCruaLote,
			Cores:                  req.Cores,
			TintaTipo:              req.TintaTipo,
			ClicheRef:              req.ClicheRef,
			VelocidadeAlvoMpm:      req.VelocidadeAlvoMpm,
			PerdasPrevistasPercent: req.PerdasPrevistasPercent,
			RegistroTolerMm:        req.RegistroTolerMm,
			Status:                 entity.PrintOrderOpen,
		}
		if err := s.repo.CreateTx(ctx, tx, oi); err != nil {
			return fmt.Errorf("create printing order: %w", err)
		}
		return s.auditRepo.AppendTx(ctx, tx, &entity.AuditLog{
			PedidoID: pedidoID,
			UserID:   userID,
			Acao:     entity.AuditOICreated,
			Detalhe:  entity.JSONB{"ordem_impressao_id": oi.ID, "numero": oi.Numero},
		})
	})
	if err != nil {
		return nil, err
	}
	return oi, nil
}

func (s *PrintingService) Get(ctx context.Context, id uint) (*entity.PrintingOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PrintingService) ListByOrder(ctx context.Context, pedidoID uint) ([]entity.PrintingOrder, error) {
	if _, err := s.orderRepo.FindByID(ctx, pedidoID); err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, pedidoID)
}

var printOrderStatuses = map[string]bool{
	entity.PrintOrderOpen:       true,
	entity.PrintOrderInProgress: true,
	entity.PrintOrderDone:       true,
	entity.PrintOrderCancelled:  true,
}

func (s *PrintingService) SetStatus(ctx context.Context, id uint, status string) (*entity.PrintingOrder, error) {
	if !printOrderStatuses[status] {
		return nil, invalidField("status", "status inválido")
	}
	oi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oi.Status = status
	oi.Bobinas = nil
	if err := s.repo.Update(ctx, oi); err != nil {
		return nil, err
	}
	return oi, nil
}

type ReceiveRollRequest struct {
	BobinaCruaID    *uint    `json:"bobina_crua_id"`
	Etiqueta        *string  `json:"etiqueta"`
	LarguraMm       *int     `json:"largura_mm"`
	PesoBrutoKg     *float64 `json:"peso_bruto_kg"`
	TaraTuboKg      *float64 `json:"tara_tubo_kg"`
	TaraEmbalagemKg *float64 `json:"tara_embalagem_kg"`
	LocalEstoque    *string  `json:"local_estoque"`
}

// ReceiveRoll registra a bobina saída da impressora e lança a ENTRADA
// de estoque pelo peso líquido, tudo numa transação.
func (s *PrintingService) ReceiveRoll(ctx context.Context, ordemImpressaoID uint, req *ReceiveRollRequest) (*entity.PrintedRoll, error) {
	if req.PesoBrutoKg == nil || *req.PesoBrutoKg <= 0 {
		return nil, invalidField("peso_bruto_kg", "deve ser positivo")
	}

	var roll *entity.PrintedRoll
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		var oi entity.PrintingOrder
		if err := tx.WithContext(ctx).First(&oi, "id = ?", ordemImpressaoID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return repository.ErrNotFound
			}
			return err
		}
		if oi.Status == entity.PrintOrderCancelled {
			return invalidField("ordem_impressao_id", "OI cancelada")
		}

		pending := entity.QC2Pending
		roll = &entity.PrintedRoll{
			OrdemImpressaoID: ordemImpressaoID,
			BobinaCruaID:     req.BobinaCruaID,
			Etiqueta:         req.Etiqueta,
			LarguraMm:        req.LarguraMm,
			PesoBrutoKg:      req.PesoBrutoKg,
			TaraTuboKg:       req.TaraTuboKg,
			TaraEmbalagemKg:  req.TaraEmbalagemKg,
			QC2Status:        &pending,
			LocalEstoque:     req.LocalEstoque,
		}
		if err := s.repo.CreateRollTx(ctx, tx, roll); err != nil {
			return fmt.Errorf("create roll: %w", err)
		}

		liquido := *req.PesoBrutoKg
		if req.TaraTuboKg != nil {
			liquido -= *req.TaraTuboKg
		}
		if req.TaraEmbalagemKg != nil {
			liquido -= *req.TaraEmbalagemKg
		}
		ref := oi.Numero
		return s.repo.CreateMoveTx(ctx, tx, &entity.RollStockMove{
			BobinaImpressaID: roll.ID,
			Tipo:             entity.RollMoveIn,
			QtdKg:            liquido,
			Referencia:       &ref,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindRollByID(ctx, roll.ID)
}

// SetRollQC registra o resultado da inspeção QC2 da bobina.
func (s *PrintingService) SetRollQC(ctx context.Context, rollID uint, status string, sucataKg *float64, motivo *string) (*entity.PrintedRoll, error) {
	switch status {
	case entity.QC2Approved, entity.QC2Rejected, entity.QC2Pending:
	default:
		return nil, invalidField("qc2_status", "status inválido")
	}
	roll, err := s.repo.FindRollByID(ctx, rollID)
	if err != nil {
		return nil, err
	}
	roll.QC2Status = &status
	if sucataKg != nil {
		roll.SucataKg = sucataKg
	}
	if motivo != nil {
		roll.SucataMotivo = motivo
	}
	if err := s.repo.UpdateRoll(ctx, roll); err != nil {
		return nil, err
	}
	return roll, nil
}

func (s *PrintingService) ListRolls(ctx context.Context, ordemImpressaoID uint) ([]entity.PrintedRoll, error) {
	return s.repo.ListRolls(ctx, ordemImpressaoID)
}

func (s *PrintingService) RollBalance(ctx context.Context, rollID uint) (float64, error) {
	if _, err := s.repo.FindRollByID(ctx, rollID); err != nil {
		return 0, err
	}
	return s.repo.RollBalanceKg(ctx, rollID)
}

func (s *PrintingService) ListMoves(ctx context.Context, rollID uint) ([]entity.RollStockMove, error) {
	return s.repo.ListMoves(ctx, rollID)
}

type RollEligibility struct {
	BobinaID  uint    `json:"bobina_id"`
	QC2Status *string `json:"qc2_status"`
	SaldoKg   float64 `json:"saldo_kg"`
}

// CutSealEligibility avalia se a OI já pode alimentar o corte & solda:
// precisa de ao menos uma bobina com QC2 aprovada e saldo >= pesoMinKg.
func (s *PrintingService) CutSealEligibility(ctx context.Context, ordemImpressaoID uint, pesoMinKg float64) (bool, []RollEligibility, error) {
	if _, err := s.repo.FindByID(ctx, ordemImpressaoID); err != nil {
		return false, nil, err
	}
	rolls, err := s.repo.ListRolls(ctx, ordemImpressaoID)
	if err != nil {
		return false, nil, err
	}

	eligible := false
	out := make([]RollEligibility, 0, len(rolls))
	for _, roll := range rolls {
		saldo, err := s.repo.RollBalanceKg(ctx, roll.ID)
		if err != nil {
			return false, nil, err
		}
		if roll.QC2Status != nil && *roll.QC2Status == entity.QC2Approved && saldo >= pesoMinKg {
			eligible = true
		}
		out = append(out, RollEligibility{BobinaID: roll.ID, QC2Status: roll.QC2Status, SaldoKg: saldo})
	}
	return eligible, out, nil
}
