package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

// Transaction executa fn numa transação do banco. Toda mutação de pedido
// que grava auditoria junto passa por aqui.
func (r *OrderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *OrderRepository) CreateTx(ctx context.Context, tx *gorm.DB, o *entity.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Itens", func(db *gorm.DB) *gorm.DB {
			return db.Order("pedido_itens.id ASC")
		}).
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// FindByIDTx relê o pedido dentro da transação corrente, sem associações.
func (r *OrderRepository) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*entity.Order, error) {
	var o entity.Order
	err := tx.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, numero string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).First(&o, "numero_pedido = ?", numero).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.Order, error) {
	var orders []entity.Order

	query := r.db.WithContext(ctx)
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if clienteID, ok := filters["cliente_id"].(uint); ok && clienteID > 0 {
		query = query.Where("cliente_id = ?", clienteID)
	}
	if q, ok := filters["q"].(string); ok && q != "" {
		query = query.Where("numero_pedido ILIKE ?", "%"+q+"%")
	}

	err := query.
		Preload("Cliente").
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateTx(ctx context.Context, tx *gorm.DB, o *entity.Order) error {
	return tx.WithContext(ctx).Save(o).Error
}

// UpdateColumnsTx grava apenas as colunas informadas, sem tocar no resto.
func (r *OrderRepository) UpdateColumnsTx(ctx context.Context, tx *gorm.DB, id uint, values map[string]interface{}) error {
	return tx.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(values).Error
}

// ========== Itens ==========

func (r *OrderRepository) CreateItemTx(ctx context.Context, tx *gorm.DB, item *entity.OrderItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *OrderRepository) FindItemByID(ctx context.Context, id uint) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *OrderRepository) ListItems(ctx context.Context, pedidoID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) ListItemsTx(ctx context.Context, tx *gorm.DB, pedidoID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := tx.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) UpdateItemTx(ctx context.Context, tx *gorm.DB, item *entity.OrderItem) error {
	return tx.WithContext(ctx).Save(item).Error
}

func (r *OrderRepository) DeleteItemTx(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&entity.OrderItem{}, "id = ?", id).Error
}
