package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ShipmentRepository) CreateTx(ctx context.Context, tx *gorm.DB, s *entity.Shipment) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id uint) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ShipmentRepository) ListByOrder(ctx context.Context, pedidoID uint) ([]entity.Shipment, error) {
	var shipments []entity.Shipment
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("id ASC").
		Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.Shipment, error) {
	var shipments []entity.Shipment

	query := r.db.WithContext(ctx)
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if pedidoID, ok := filters["pedido_id"].(uint); ok && pedidoID > 0 {
		query = query.Where("pedido_id = ?", pedidoID)
	}

	err := query.Order("id DESC").Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepository) Update(ctx context.Context, s *entity.Shipment) error {
	return r.db.WithContext(ctx).Save(s).Error
}
