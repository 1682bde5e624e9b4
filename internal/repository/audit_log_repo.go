package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// AppendTx grava uma entrada de auditoria na mesma transação da mutação
// que ela descreve. Se a mutação falhar, o log sai junto no rollback.
func (r *AuditLogRepository) AppendTx(ctx context.Context, tx *gorm.DB, log *entity.AuditLog) error {
	return tx.WithContext(ctx).Create(log).Error
}

// ListByOrder devolve a trilha do pedido em ordem de inserção.
func (r *AuditLogRepository) ListByOrder(ctx context.Context, pedidoID uint) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

func (r *AuditLogRepository) ListByAction(ctx context.Context, pedidoID uint, acao string) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := r.db.WithContext(ctx).
		Where("pedido_id = ? AND acao = ?", pedidoID, acao).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}
