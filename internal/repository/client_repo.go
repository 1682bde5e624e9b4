package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) DB() *gorm.DB {
	return r.db
}

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) CreateTx(ctx context.Context, tx *gorm.DB, c *entity.Client) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*entity.Client, error) {
	var c entity.Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ClientRepository) FindByCode(ctx context.Context, code string) (*entity.Client, error) {
	var c entity.Client
	err := r.db.WithContext(ctx).First(&c, "codigo_interno = ?", code).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.Client, error) {
	var clients []entity.Client

	query := r.db.WithContext(ctx)
	if q, ok := filters["q"].(string); ok && q != "" {
		like := "%" + q + "%"
		query = query.Where("razao_social ILIKE ? OR cnpj LIKE ? OR codigo_interno ILIKE ?", like, like, like)
	}
	if uf, ok := filters["estado"].(string); ok && uf != "" {
		query = query.Where("estado = ?", uf)
	}

	err := query.Order("id ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Client{}, "id = ?", id).Error
}

// LinkedCount conta pedidos e embalagens que apontam para o cliente.
func (r *ClientRepository) LinkedCount(ctx context.Context, id uint) (int64, error) {
	var orders, specs int64
	if err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("cliente_id = ?", id).Count(&orders).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.PackagingSpec{}).
		Where("cliente_id = ?", id).Count(&specs).Error; err != nil {
		return 0, err
	}
	return orders + specs, nil
}
