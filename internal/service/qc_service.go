package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

var qcResults = map[string]bool{
	entity.QCResultApproved:    true,
	entity.QCResultRejected:    true,
	entity.QCResultConditional: true,
}

var qcTypes = map[string]bool{
	entity.QCTypeIncoming: true,
	entity.QCTypePrinted:  true,
	entity.QCTypeFinished: true,
	entity.QCTypeShipment: true,
}

// QCService registra inspeções de qualidade. Inspeções atreladas a um
// pedido entram também na trilha de auditoria dele.
type QCService struct {
	repo      *repository.QCRepository
	orderRepo *repository.OrderRepository
	auditRepo *repository.AuditLogRepository
}

func NewQCService(repo *repository.QCRepository, orderRepo *repository.OrderRepository, auditRepo *repository.AuditLogRepository) *QCService {
	return &QCService{repo: repo, orderRepo: orderRepo, auditRepo: auditRepo}
}

type AddInspectionRequest struct {
	Tipo        string        `json:"tipo"`
	Amostra     *string       `json:"amostra"`
	Resultado   string        `json:"resultado" binding:"required"`
	Observacoes *string       `json:"observacoes"`
	Fotos       []interface{} `json:"fotos"`
}

// AddForOrder registra uma inspeção referenciando o pedido e loga
// QC_ADDED na mesma transação.
func (s *QCService) AddForOrder(ctx context.Context, pedidoID uint, userID *uint, req *AddInspectionRequest) (*entity.QCInspection, error) {
	resultado := strings.ToUpper(strings.TrimSpace(req.Resultado))
	if !qcResults[resultado] {
		return nil, invalidField("resultado", "deve ser APROVADO, REPROVADO ou CONDICIONAL")
	}
	tipo := strings.ToUpper(strings.TrimSpace(req.Tipo))
	if tipo == "" {
		tipo = entity.QCTypeFinished
	}
	if !qcTypes[tipo] {
		return nil, invalidField("tipo", "deve ser QC1, QC2, QC3 ou QC4")
	}

	var insp *entity.QCInspection
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.orderRepo.FindByIDTx(ctx, tx, pedidoID); err != nil {
			return err
		}
		insp = &entity.QCInspection{
			Tipo:         tipo,
			ReferenciaID: pedidoID,
			Amostra:      req.Amostra,
			Resultado:    resultado,
			Observacoes:  req.Observacoes,
			Fotos:        entity.JSONBArray(req.Fotos),
		}
		if err := s.repo.CreateTx(ctx, tx, insp); err != nil {
			return fmt.Errorf("create inspection: %w", err)
		}
		return s.auditRepo.AppendTx(ctx, tx, &entity.AuditLog{
			PedidoID: pedidoID,
			UserID:   userID,
			Acao:     entity.AuditQCAdded,
			Detalhe:  entity.JSONB{"qc_id": insp.ID, "tipo": tipo, "resultado": resultado},
		})
	})
	if err != nil {
		return nil, err
	}
	return insp, nil
}

func (s *QCService) ListForOrder(ctx context.Context, pedidoID uint) ([]entity.QCInspection, error) {
	if _, err := s.orderRepo.FindByID(ctx, pedidoID); err != nil {
		return nil, err
	}
	return s.repo.ListByReferenceID(ctx, pedidoID)
}

func (s *QCService) List(ctx context.Context, filters map[string]interface{}) ([]entity.QCInspection, error) {
	return s.repo.List(ctx, filters)
}

func (s *QCService) Get(ctx context.Context, id uint) (*entity.QCInspection, error) {
	return s.repo.FindByID(ctx, id)
}
