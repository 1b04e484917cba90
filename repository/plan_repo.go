package repository

import (
	"context"

	"github.com/Itish41/asset-audit/models"
	"gorm.io/gorm"
)

type PlanRepo struct {
	db *gorm.DB
}

func NewPlanRepo(db *gorm.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

// Get loads a plan together with its per-location auditor assignments.
func (r *PlanRepo) Get(ctx context.Context, id string) (*models.AuditPlan, error) {
	var plan models.AuditPlan
	if err := r.db.WithContext(ctx).
		Preload("AuditorAssignments").
		First(&plan, "id = ?", id).Error; err != nil {
		return nil, translate("audit plan", id, err)
	}
	return &plan, nil
}
