package repository

import (
	"context"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"gorm.io/gorm"
)

type ReminderLogRepo struct {
	db *gorm.DB
}

func NewReminderLogRepo(db *gorm.DB) *ReminderLogRepo {
	return &ReminderLogRepo{db: db}
}

func (r *ReminderLogRepo) Create(ctx context.Context, entry *models.ReminderLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return &engine.DependencyError{Op: "record reminder", Err: err}
	}
	return nil
}

func (r *ReminderLogRepo) ListByPlan(ctx context.Context, planID string) ([]models.ReminderLog, error) {
	logs := make([]models.ReminderLog, 0)
	if err := r.db.WithContext(ctx).
		Where("audit_plan_id = ?", planID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, &engine.DependencyError{Op: "list reminders", Err: err}
	}
	return logs, nil
}
