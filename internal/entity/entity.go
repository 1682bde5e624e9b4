package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// JSONB tipo auxiliar para colunas jsonb
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan JSONB: %v", value)
	}
	return json.Unmarshal(bytes, j)
}

// JSONBArray tipo auxiliar para colunas jsonb de lista
type JSONBArray []interface{}

func (j JSONBArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONBArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan JSONBArray: %v", value)
	}
	return json.Unmarshal(bytes, j)
}

// AutoMigrate cria/atualiza todas as tabelas do Procman.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Sequence{},
		&Client{},
		&Partner{},
		&JobRole{},
		&Employee{},
		&PackagingSpec{},
		&Order{},
		&OrderItem{},
		&AuditLog{},
		&PrintingOrder{},
		&PrintedRoll{},
		&RollStockMove{},
		&ProductionOrder{},
		&ProductionReading{},
		&QCInspection{},
		&Shipment{},
	)
}

// Bootstrap aplica o que o AutoMigrate não expressa: o índice único de
// (embalagem_code, rev) com rev nulo normalizado, e a linha semente dos
// numeradores. Idempotente; roda a cada subida.
func Bootstrap(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idxu_emb_code_rev
		   ON embalagem_master (embalagem_code, COALESCE(rev, ''))`,
		`INSERT INTO numeradores (nome, ultimo) VALUES ('PED', 0)
		   ON CONFLICT (nome) DO NOTHING`,
		`INSERT INTO numeradores (nome, ultimo) VALUES ('OP', 0)
		   ON CONFLICT (nome) DO NOTHING`,
		`INSERT INTO numeradores (nome, ultimo) VALUES ('OI', 0)
		   ON CONFLICT (nome) DO NOTHING`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}
	return nil
}
