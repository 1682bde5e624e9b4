package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type PackagingRepository struct {
	db *gorm.DB
}

func NewPackagingRepository(db *gorm.DB) *PackagingRepository {
	return &PackagingRepository{db: db}
}

func (r *PackagingRepository) Create(ctx context.Context, p *entity.PackagingSpec) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PackagingRepository) FindByID(ctx context.Context, id uint) (*entity.PackagingSpec, error) {
	var p entity.PackagingSpec
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// FindByCodeRev localiza pela chave natural. rev nulo e rev vazia são a
// mesma revisão base.
func (r *PackagingRepository) FindByCodeRev(ctx context.Context, code string, rev *string) (*entity.PackagingSpec, error) {
	var p entity.PackagingSpec
	query := r.db.WithContext(ctx).Where("embalagem_code = ?", code)
	if rev == nil || *rev == "" {
		query = query.Where("rev IS NULL OR rev = ''")
	} else {
		query = query.Where("rev = ?", *rev)
	}
	err := query.First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PackagingRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.PackagingSpec, error) {
	var specs []entity.PackagingSpec

	query := r.db.WithContext(ctx)
	if clienteID, ok := filters["cliente_id"].(uint); ok && clienteID > 0 {
		query = query.Where("cliente_id = ?", clienteID)
	}
	if vendido, ok := filters["vendido"].(bool); ok {
		query = query.Where("vendido = ?", vendido)
	}
	if material, ok := filters["material"].(string); ok && material != "" {
		query = query.Where("material = ?", material)
	}
	if q, ok := filters["q"].(string); ok && q != "" {
		like := "%" + q + "%"
		query = query.Where("embalagem_code ILIKE ? OR observacoes ILIKE ?", like, like)
	}

	err := query.
		Preload("Cliente").
		Order("embalagem_code ASC, rev ASC NULLS FIRST").
		Find(&specs).Error
	return specs, err
}

func (r *PackagingRepository) Update(ctx context.Context, p *entity.PackagingSpec) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PackagingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.PackagingSpec{}, "id = ?", id).Error
}

// ListRevisions lista todas as revisões de um código, base primeiro.
func (r *PackagingRepository) ListRevisions(ctx context.Context, code string) ([]entity.PackagingSpec, error) {
	var specs []entity.PackagingSpec
	err := r.db.WithContext(ctx).
		Where("embalagem_code = ?", code).
		Order("rev ASC NULLS FIRST").
		Find(&specs).Error
	return specs, err
}
