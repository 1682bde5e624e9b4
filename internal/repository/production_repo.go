package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type ProductionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

func (r *ProductionRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ProductionRepository) CreateTx(ctx context.Context, tx *gorm.DB, op *entity.ProductionOrder) error {
	return tx.WithContext(ctx).Create(op).Error
}

func (r *ProductionRepository) FindByID(ctx context.Context, id uint) (*entity.ProductionOrder, error) {
	var op entity.ProductionOrder
	err := r.db.WithContext(ctx).
		Preload("Apontamentos").
		First(&op, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &op, nil
}

func (r *ProductionRepository) ListByOrder(ctx context.Context, pedidoID uint) ([]entity.ProductionOrder, error) {
	var ops []entity.ProductionOrder
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("id ASC").
		Find(&ops).Error
	return ops, err
}

// CountByOrderTx conta OPs do pedido dentro da transação. Serve para
// detectar a primeira OP e disparar o avanço de status.
func (r *ProductionRepository) CountByOrderTx(ctx context.Context, tx *gorm.DB, pedidoID uint) (int64, error) {
	var n int64
	err := tx.WithContext(ctx).
		Model(&entity.ProductionOrder{}).
		Where("pedido_id = ?", pedidoID).
		Count(&n).Error
	return n, err
}

func (r *ProductionRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.ProductionOrder, error) {
	var ops []entity.ProductionOrder

	query := r.db.WithContext(ctx)
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if pedidoID, ok := filters["pedido_id"].(uint); ok && pedidoID > 0 {
		query = query.Where("pedido_id = ?", pedidoID)
	}

	err := query.Order("id DESC").Find(&ops).Error
	return ops, err
}

func (r *ProductionRepository) Update(ctx context.Context, op *entity.ProductionOrder) error {
	return r.db.WithContext(ctx).Save(op).Error
}

// ========== Apontamentos ==========

func (r *ProductionRepository) CreateReadingTx(ctx context.Context, tx *gorm.DB, pa *entity.ProductionReading) error {
	return tx.WithContext(ctx).Create(pa).Error
}

func (r *ProductionRepository) ListReadings(ctx context.Context, ordemProducaoID uint) ([]entity.ProductionReading, error) {
	var readings []entity.ProductionReading
	err := r.db.WithContext(ctx).
		Where("ordem_producao_id = ?", ordemProducaoID).
		Order("id ASC").
		Find(&readings).Error
	return readings, err
}
