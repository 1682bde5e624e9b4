package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kleberrossi/procman/internal/entity"
)

type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

func (r *SequenceRepository) DB() *gorm.DB {
	return r.db
}

// NextNumber incrementa e devolve o próximo valor do numerador nomeado.
// A linha é travada com FOR UPDATE, então chamadas concorrentes nunca
// devolvem o mesmo número. Deve rodar dentro da transação recebida.
func (r *SequenceRepository) NextNumber(ctx context.Context, tx *gorm.DB, nome string) (int64, error) {
	var seq entity.Sequence
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seq, "nome = ?", nome).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = entity.Sequence{Nome: nome, Ultimo: 0}
		if err := tx.WithContext(ctx).Create(&seq).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}
	seq.Ultimo++
	if err := tx.WithContext(ctx).Save(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Ultimo, nil
}

// NextEntityCode deriva o próximo código sequencial (ex.: C00042) varrendo
// o maior código válido já emitido na tabela. A numeração começa em zero:
// o primeiro código é <prefix>00000.
func (r *SequenceRepository) NextEntityCode(ctx context.Context, tx *gorm.DB, table, column string, prefix byte) (string, error) {
	pattern := fmt.Sprintf("^%c[0-9]{5}$", prefix)
	var next int
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(CAST(SUBSTRING(%s FROM 2) AS INTEGER)), -1) + 1 FROM %s WHERE %s ~ ?",
		column, table, column,
	)
	err := tx.WithContext(ctx).Raw(query, pattern).Scan(&next).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%c%05d", prefix, next), nil
}

// BackfillEntityCodes atribui códigos às linhas ainda sem código, em ordem
// de id crescente, continuando do maior código existente.
func (r *SequenceRepository) BackfillEntityCodes(ctx context.Context, table, column string, prefix byte) (int, error) {
	filled := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		q := fmt.Sprintf("SELECT id FROM %s WHERE %s IS NULL ORDER BY id ASC", table, column)
		if err := tx.Raw(q).Scan(&ids).Error; err != nil {
			return err
		}
		for _, id := range ids {
			code, err := r.NextEntityCode(ctx, tx, table, column, prefix)
			if err != nil {
				return err
			}
			upd := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, column)
			if err := tx.Exec(upd, code, id).Error; err != nil {
				return err
			}
			filled++
		}
		return nil
	})
	return filled, err
}
