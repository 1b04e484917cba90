package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"gorm.io/gorm"
)

const priorityOrder = "CASE priority WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END"

type ActionRepo struct {
	db *gorm.DB
}

func NewActionRepo(db *gorm.DB) *ActionRepo {
	return &ActionRepo{db: db}
}

// Create inserts an action unless an open action already references the same
// asset. The check runs in the insert's transaction; the partial unique index
// idx_corrective_actions_open_asset covers concurrent writers.
func (r *ActionRepo) Create(ctx context.Context, action *models.CorrectiveAction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNoOpenAction(tx, action.AuditAssetID, ""); err != nil {
			return err
		}
		return tx.Create(action).Error
	})
	return r.writeError("create corrective action", action.AuditAssetID, err)
}

func (r *ActionRepo) Get(ctx context.Context, id string) (*models.CorrectiveAction, error) {
	var action models.CorrectiveAction
	if err := r.db.WithContext(ctx).First(&action, "id = ?", id).Error; err != nil {
		return nil, translate("corrective action", id, err)
	}
	return &action, nil
}

// Save writes every field of an existing action. When the action is open the
// asset it references must not carry another open action.
func (r *ActionRepo) Save(ctx context.Context, action *models.CorrectiveAction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CorrectiveAction{}).Where("id = ?", action.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &engine.NotFoundError{Kind: "corrective action", ID: action.ID}
		}
		if action.Status != models.ActionStatusCompleted {
			if err := ensureNoOpenAction(tx, action.AuditAssetID, action.ID); err != nil {
				return err
			}
		}
		return tx.Save(action).Error
	})
	return r.writeError("save corrective action", action.AuditAssetID, err)
}

func (r *ActionRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.CorrectiveAction{}, "id = ?", id)
	if res.Error != nil {
		return &engine.DependencyError{Op: fmt.Sprintf("delete corrective action %s", id), Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &engine.NotFoundError{Kind: "corrective action", ID: id}
	}
	return nil
}

func (r *ActionRepo) ListByPlan(ctx context.Context, planID string) ([]models.CorrectiveAction, error) {
	actions := make([]models.CorrectiveAction, 0)
	if err := r.db.WithContext(ctx).
		Where("audit_plan_id = ?", planID).
		Order("created_at").
		Find(&actions).Error; err != nil {
		return nil, &engine.DependencyError{Op: "list corrective actions", Err: err}
	}
	return actions, nil
}

func (r *ActionRepo) ListByIDs(ctx context.Context, ids []string) ([]models.CorrectiveAction, error) {
	actions := make([]models.CorrectiveAction, 0, len(ids))
	if len(ids) == 0 {
		return actions, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&actions).Error; err != nil {
		return nil, &engine.DependencyError{Op: "list corrective actions by id", Err: err}
	}
	return actions, nil
}

// ActionedAssetIDs returns the ids of plan assets referenced by any action.
func (r *ActionRepo) ActionedAssetIDs(ctx context.Context, planID string) (map[string]struct{}, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.CorrectiveAction{}).
		Where("audit_plan_id = ?", planID).
		Distinct().
		Pluck("audit_asset_id", &ids).Error; err != nil {
		return nil, &engine.DependencyError{Op: "list actioned assets", Err: err}
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// List pages through actions matching filter.
func (r *ActionRepo) List(ctx context.Context, filter models.ActionFilter) (*models.ActionPage, error) {
	filter.Normalize()

	q := r.db.WithContext(ctx).Model(&models.CorrectiveAction{})
	if filter.AuditPlanID != "" {
		q = q.Where("audit_plan_id = ?", filter.AuditPlanID)
	}
	switch filter.Status {
	case "":
	case models.ActionStatusOverdue:
		q = q.Where("status <> ? AND due_date IS NOT NULL AND due_date < ?", models.ActionStatusCompleted, filter.Now)
	default:
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Unassigned {
		q = q.Where("(assigned_to IS NULL OR assigned_to = '')")
	} else if filter.AssignedTo != "" {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, &engine.DependencyError{Op: "count corrective actions", Err: err}
	}

	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}
	order := filter.SortBy + " " + dir
	if filter.SortBy == "priority" {
		order = priorityOrder + " " + dir
	}

	items := make([]models.CorrectiveAction, 0, filter.Limit)
	if err := q.Order(order).Order("id").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&items).Error; err != nil {
		return nil, &engine.DependencyError{Op: "list corrective actions", Err: err}
	}

	return &models.ActionPage{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ensureNoOpenAction(tx *gorm.DB, auditAssetID, exceptID string) error {
	if auditAssetID == "" {
		return &engine.ValidationError{Field: "audit_asset_id", Reason: "required"}
	}
	q := tx.Model(&models.CorrectiveAction{}).
		Where("audit_asset_id = ? AND status <> ?", auditAssetID, models.ActionStatusCompleted)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var existing models.CorrectiveAction
	err := q.Select("id").Take(&existing).Error
	switch {
	case err == nil:
		return &engine.DuplicateActionError{AuditAssetID: auditAssetID, ExistingActionID: existing.ID}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

func (r *ActionRepo) writeError(op, auditAssetID string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &engine.DuplicateActionError{AuditAssetID: auditAssetID}
	}
	return engine.Dependency(op, err)
}
