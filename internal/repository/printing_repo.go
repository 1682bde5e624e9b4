package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type PrintingRepository struct {
	db *gorm.DB
}

func NewPrintingRepository(db *gorm.DB) *PrintingRepository {
	return &PrintingRepository{db: db}
}

func (r *PrintingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *PrintingRepository) CreateTx(ctx context.Context, tx *gorm.DB, oi *entity.PrintingOrder) error {
	return tx.WithContext(ctx).Create(oi).Error
}

func (r *PrintingRepository) FindByID(ctx context.Context, id uint) (*entity.PrintingOrder, error) {
	var oi entity.PrintingOrder
	err := r.db.WithContext(ctx).
		Preload("Bobinas").
		First(&oi, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &oi, nil
}

func (r *PrintingRepository) ListByOrder(ctx context.Context, pedidoID uint) ([]entity.PrintingOrder, error) {
	var ois []entity.PrintingOrder
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Order("id ASC").
		Find(&ois).Error
	return ois, err
}

func (r *PrintingRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.PrintingOrder, error) {
	var ois []entity.PrintingOrder

	query := r.db.WithContext(ctx)
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if pedidoID, ok := filters["pedido_id"].(uint); ok && pedidoID > 0 {
		query = query.Where("pedido_id = ?", pedidoID)
	}

	err := query.Order("id DESC").Find(&ois).Error
	return ois, err
}

func (r *PrintingRepository) Update(ctx context.Context, oi *entity.PrintingOrder) error {
	return r.db.WithContext(ctx).Save(oi).Error
}

// ========== Bobinas impressas ==========

func (r *PrintingRepository) CreateRollTx(ctx context.Context, tx *gorm.DB, roll *entity.PrintedRoll) error {
	return tx.WithContext(ctx).Create(roll).Error
}

func (r *PrintingRepository) FindRollByID(ctx context.Context, id uint) (*entity.PrintedRoll, error) {
	var roll entity.PrintedRoll
	err := r.db.WithContext(ctx).First(&roll, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &roll, nil
}

func (r *PrintingRepository) ListRolls(ctx context.Context, ordemImpressaoID uint) ([]entity.PrintedRoll, error) {
	var rolls []entity.PrintedRoll
	err := r.db.WithContext(ctx).
		Where("ordem_impressao_id = ?", ordemImpressaoID).
		Order("id ASC").
		Find(&rolls).Error
	return rolls, err
}

func (r *PrintingRepository) UpdateRoll(ctx context.Context, roll *entity.PrintedRoll) error {
	return r.db.WithContext(ctx).Save(roll).Error
}

// ========== Estoque de bobinas ==========

func (r *PrintingRepository) CreateMoveTx(ctx context.Context, tx *gorm.DB, mov *entity.RollStockMove) error {
	return tx.WithContext(ctx).Create(mov).Error
}

func (r *PrintingRepository) ListMoves(ctx context.Context, bobinaID uint) ([]entity.RollStockMove, error) {
	var moves []entity.RollStockMove
	err := r.db.WithContext(ctx).
		Where("bobinas_impressa_id = ?", bobinaID).
		Order("id ASC").
		Find(&moves).Error
	return moves, err
}

// RollBalanceKg soma entradas e subtrai saídas da bobina em estoque.
func (r *PrintingRepository) RollBalanceKg(ctx context.Context, bobinaID uint) (float64, error) {
	var balance float64
	err := r.db.WithContext(ctx).
		Model(&entity.RollStockMove{}).
		Select("COALESCE(SUM(CASE WHEN tipo = ? THEN qtd_kg WHEN tipo = ? THEN -qtd_kg ELSE qtd_kg END), 0)",
			entity.RollMoveIn, entity.RollMoveOut).
		Where("bobinas_impressa_id = ?", bobinaID).
		Scan(&balance).Error
	return balance, err
}
