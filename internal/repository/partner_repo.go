package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) DB() *gorm.DB {
	return r.db
}

func (r *PartnerRepository) Create(ctx context.Context, p *entity.Partner) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PartnerRepository) CreateTx(ctx context.Context, tx *gorm.DB, p *entity.Partner) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *PartnerRepository) FindByID(ctx context.Context, id uint) (*entity.Partner, error) {
	var p entity.Partner
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PartnerRepository) FindByCNPJ(ctx context.Context, cnpj string) (*entity.Partner, error) {
	var p entity.Partner
	err := r.db.WithContext(ctx).First(&p, "cnpj = ?", cnpj).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PartnerRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.Partner, error) {
	var partners []entity.Partner

	query := r.db.WithContext(ctx)
	if tipo, ok := filters["tipo"].(string); ok && tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}
	if ativo, ok := filters["ativo"].(bool); ok {
		query = query.Where("ativo = ?", ativo)
	}
	if q, ok := filters["q"].(string); ok && q != "" {
		like := "%" + q + "%"
		query = query.Where("razao_social ILIKE ? OR cnpj LIKE ? OR codigo_interno ILIKE ?", like, like, like)
	}

	err := query.Order("id ASC").Find(&partners).Error
	return partners, err
}

func (r *PartnerRepository) Update(ctx context.Context, p *entity.Partner) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PartnerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Partner{}, "id = ?", id).Error
}

// LinkedCount conta colaboradores vinculados ao parceiro.
func (r *PartnerRepository) LinkedCount(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Employee{}).
		Where("parceiro_id = ?", id).Count(&n).Error
	return n, err
}
