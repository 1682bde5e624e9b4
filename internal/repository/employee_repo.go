package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kleberrossi/procman/internal/entity"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uint) (*entity.Employee, error) {
	var e entity.Employee
	err := r.db.WithContext(ctx).
		Preload("Parceiro").
		Preload("Funcao").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *EmployeeRepository) FindByCPF(ctx context.Context, cpf string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.db.WithContext(ctx).First(&e, "cpf = ?", cpf).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.Employee, error) {
	var employees []entity.Employee

	query := r.db.WithContext(ctx)
	if setor, ok := filters["setor"].(string); ok && setor != "" {
		query = query.Where("setor = ?", setor)
	}
	if vinculo, ok := filters["vinculo"].(string); ok && vinculo != "" {
		query = query.Where("vinculo = ?", vinculo)
	}
	if ativo, ok := filters["ativo"].(bool); ok {
		query = query.Where("ativo = ?", ativo)
	}
	if q, ok := filters["q"].(string); ok && q != "" {
		like := "%" + q + "%"
		query = query.Where("nome ILIKE ? OR cargo ILIKE ?", like, like)
	}

	err := query.
		Preload("Funcao").
		Order("nome ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Employee{}, "id = ?", id).Error
}

// ========== JobRole ==========

func (r *EmployeeRepository) CreateRole(ctx context.Context, j *entity.JobRole) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *EmployeeRepository) FindRoleByID(ctx context.Context, id uint) (*entity.JobRole, error) {
	var j entity.JobRole
	err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *EmployeeRepository) ListRoles(ctx context.Context, onlyActive bool) ([]entity.JobRole, error) {
	var roles []entity.JobRole
	query := r.db.WithContext(ctx)
	if onlyActive {
		query = query.Where("ativo = ?", true)
	}
	err := query.Order("nome ASC").Find(&roles).Error
	return roles, err
}

func (r *EmployeeRepository) UpdateRole(ctx context.Context, j *entity.JobRole) error {
	return r.db.WithContext(ctx).Save(j).Error
}
