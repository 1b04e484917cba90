package repository

import (
	"context"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"gorm.io/gorm"
)

type EmployeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

// List returns the roster, optionally restricted to one role. An empty role
// returns everyone.
func (r *EmployeeRepo) List(ctx context.Context, role models.EmployeeRole) ([]models.Employee, error) {
	employees := make([]models.Employee, 0)
	q := r.db.WithContext(ctx).Order("name")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&employees).Error; err != nil {
		return nil, &engine.DependencyError{Op: "load roster", Err: err}
	}
	return employees, nil
}

func (r *EmployeeRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Employee, error) {
	employees := make([]models.Employee, 0, len(ids))
	if len(ids) == 0 {
		return employees, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error; err != nil {
		return nil, &engine.DependencyError{Op: "load employees", Err: err}
	}
	return employees, nil
}
