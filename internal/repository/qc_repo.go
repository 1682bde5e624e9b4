package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type QCRepository struct {
	db *gorm.DB
}

func NewQCRepository(db *gorm.DB) *QCRepository {
	return &QCRepository{db: db}
}

func (r *QCRepository) Create(ctx context.Context, insp *entity.QCInspection) error {
	return r.db.WithContext(ctx).Create(insp).Error
}

func (r *QCRepository) CreateTx(ctx context.Context, tx *gorm.DB, insp *entity.QCInspection) error {
	return tx.WithContext(ctx).Create(insp).Error
}

func (r *QCRepository) FindByID(ctx context.Context, id uint) (*entity.QCInspection, error) {
	var insp entity.QCInspection
	err := r.db.WithContext(ctx).First(&insp, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &insp, nil
}

func (r *QCRepository) ListByReference(ctx context.Context, tipo string, referenciaID uint) ([]entity.QCInspection, error) {
	var insps []entity.QCInspection
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND referencia_id = ?", tipo, referenciaID).
		Order("id ASC").
		Find(&insps).Error
	return insps, err
}

// ListByReferenceID devolve toda inspeção apontando para a referência,
// qualquer que seja o tipo.
func (r *QCRepository) ListByReferenceID(ctx context.Context, referenciaID uint) ([]entity.QCInspection, error) {
	var insps []entity.QCInspection
	err := r.db.WithContext(ctx).
		Where("referencia_id = ?", referenciaID).
		Order("id ASC").
		Find(&insps).Error
	return insps, err
}

func (r *QCRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.QCInspection, error) {
	var insps []entity.QCInspection

	query := r.db.WithContext(ctx)
	if tipo, ok := filters["tipo"].(string); ok && tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}
	if resultado, ok := filters["resultado"].(string); ok && resultado != "" {
		query = query.Where("resultado = ?", resultado)
	}

	err := query.Order("id DESC").Find(&insps).Error
	return insps, err
}
