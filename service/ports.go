package services

import (
	"context"
	"time"

	"github.com/Itish41/asset-audit/models"
)

// AssetStore reads and updates the audited assets of a plan.
type AssetStore interface {
	ListByPlan(ctx context.Context, planID string) ([]models.AuditedAsset, error)
	Get(ctx context.Context, id string) (*models.AuditedAsset, error)
	UpdateStatus(ctx context.Context, id string, update models.AssetStatusUpdate) (*models.AuditedAsset, error)
	SetResolved(ctx context.Context, id string, resolved bool, notes *string) (*models.AuditedAsset, error)
}

// ActionStore persists corrective actions. Create and Save must reject a
// second open action on the same asset with engine.DuplicateActionError.
type ActionStore interface {
	Create(ctx context.Context, action *models.CorrectiveAction) error
	Get(ctx context.Context, id string) (*models.CorrectiveAction, error)
	Save(ctx context.Context, action *models.CorrectiveAction) error
	Delete(ctx context.Context, id string) error
	ListByPlan(ctx context.Context, planID string) ([]models.CorrectiveAction, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.CorrectiveAction, error)
	ActionedAssetIDs(ctx context.Context, planID string) (map[string]struct{}, error)
	List(ctx context.Context, filter models.ActionFilter) (*models.ActionPage, error)
}

type PlanStore interface {
	Get(ctx context.Context, id string) (*models.AuditPlan, error)
}

// RosterStore lists employees. An empty role means every role.
type RosterStore interface {
	List(ctx context.Context, role models.EmployeeRole) ([]models.Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Employee, error)
}

type ReminderLogStore interface {
	Create(ctx context.Context, entry *models.ReminderLog) error
	ListByPlan(ctx context.Context, planID string) ([]models.ReminderLog, error)
}

// Dispatcher delivers one consolidated reminder.
type Dispatcher interface {
	Dispatch(ctx context.Context, reminder models.Reminder) error
}

// ActionIndex keeps a full-text copy of corrective actions.
type ActionIndex interface {
	Index(ctx context.Context, action models.CorrectiveAction) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, planID, query string) ([]string, error)
}

// ReportArchiver stores a rendered plan report and returns its location.
type ReportArchiver interface {
	Archive(ctx context.Context, key string, body []byte) (string, error)
}

// Locker hands out short-lived distributed locks.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
