package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"go.uber.org/zap"
)

var errSearchDisabled = errors.New("search index is not configured")

// ActionView is a corrective action as shown to operators, with the derived
// overdue state filled in.
type ActionView struct {
	models.CorrectiveAction
	DisplayStatus models.ActionStatus `json:"display_status"`
	Overdue       bool                `json:"overdue"`
}

type ActionViewPage struct {
	Items []ActionView `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// NewAction is a request to open a corrective action for one audited asset.
// Blank text fields and priority default to the asset's discrepancy.
type NewAction struct {
	AuditAssetID string
	Issue        string
	Action       string
	Notes        string
	AssignedTo   string
	Priority     models.Priority
	DueDate      *time.Time
}

// ActionPatch carries the editable fields of a corrective action. Nil fields
// are left untouched.
type ActionPatch struct {
	AuditAssetID *string
	Issue        *string
	Action       *string
	Notes        *string
	AssignedTo   *string
	Priority     *models.Priority
	DueDate      *time.Time
	ClearDueDate bool
}

func view(a models.CorrectiveAction, now time.Time) ActionView {
	status := engine.DisplayStatus(a, now)
	return ActionView{
		CorrectiveAction: a,
		DisplayStatus:    status,
		Overdue:          status == models.ActionStatusOverdue,
	}
}

// CreateAction opens a corrective action. It fails with a ValidationError when
// no asset is referenced and with a DuplicateActionError when the asset
// already carries an open action.
func (s *AuditService) CreateAction(ctx context.Context, in NewAction) (*models.CorrectiveAction, error) {
	assetID := strings.TrimSpace(in.AuditAssetID)
	if assetID == "" {
		return nil, &engine.ValidationError{Field: "audit_asset_id", Reason: "select a discrepancy to act on"}
	}

	asset, err := s.assets.Get(ctx, assetID)
	if err != nil {
		return nil, engine.Dependency("load audited asset", err)
	}

	issue, action, priority := strings.TrimSpace(in.Issue), strings.TrimSpace(in.Action), in.Priority
	if d, ok := engine.Classify(*asset); ok {
		if issue == "" {
			issue = d.Issue
		}
		if action == "" {
			action = d.Action
		}
		if priority == "" {
			priority = d.Priority
		}
	}
	if issue == "" {
		return nil, &engine.ValidationError{Field: "issue", Reason: "required when the asset shows no discrepancy"}
	}
	if action == "" {
		return nil, &engine.ValidationError{Field: "action", Reason: "required when the asset shows no discrepancy"}
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, &engine.ValidationError{Field: "priority", Reason: "unknown priority " + string(priority)}
	}

	due := in.DueDate
	if due == nil {
		d := engine.DefaultDueDate(timeNow(), s.opts.DefaultDueMonths)
		due = &d
	}

	ca := &models.CorrectiveAction{
		AuditPlanID:  asset.AuditPlanID,
		AuditAssetID: asset.ID,
		Issue:        issue,
		Action:       action,
		Notes:        in.Notes,
		AssignedTo:   strings.TrimSpace(in.AssignedTo),
		Priority:     priority,
		Status:       models.ActionStatusPending,
		DueDate:      due,
	}
	if err := s.actions.Create(ctx, ca); err != nil {
		s.logger.Warn("create corrective action failed",
			zap.String("audit_asset_id", asset.ID), zap.Error(err))
		return nil, err
	}

	s.metrics.ActionsCreated.WithLabelValues("single").Inc()
	s.logger.Info("corrective action created",
		zap.String("action_id", ca.ID), zap.String("plan_id", ca.AuditPlanID))
	s.reindex(ctx, *ca)
	return ca, nil
}

// EditAction applies patch without re-classifying the asset. Moving the
// action to another asset runs the duplicate check again.
func (s *AuditService) EditAction(ctx context.Context, id string, patch ActionPatch) (*models.CorrectiveAction, error) {
	ca, err := s.actions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.AuditAssetID != nil {
		assetID := strings.TrimSpace(*patch.AuditAssetID)
		if assetID == "" {
			return nil, &engine.ValidationError{Field: "audit_asset_id", Reason: "cannot be empty"}
		}
		if assetID != ca.AuditAssetID {
			asset, err := s.assets.Get(ctx, assetID)
			if err != nil {
				return nil, engine.Dependency("load audited asset", err)
			}
			if asset.AuditPlanID != ca.AuditPlanID {
				return nil, &engine.ValidationError{Field: "audit_asset_id", Reason: "asset belongs to another audit plan"}
			}
			ca.AuditAssetID = asset.ID
		}
	}
	if patch.Issue != nil {
		if strings.TrimSpace(*patch.Issue) == "" {
			return nil, &engine.ValidationError{Field: "issue", Reason: "cannot be empty"}
		}
		ca.Issue = *patch.Issue
	}
	if patch.Action != nil {
		if strings.TrimSpace(*patch.Action) == "" {
			return nil, &engine.ValidationError{Field: "action", Reason: "cannot be empty"}
		}
		ca.Action = *patch.Action
	}
	if patch.Notes != nil {
		ca.Notes = *patch.Notes
	}
	if patch.AssignedTo != nil {
		ca.AssignedTo = strings.TrimSpace(*patch.AssignedTo)
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, &engine.ValidationError{Field: "priority", Reason: "unknown priority " + string(*patch.Priority)}
		}
		ca.Priority = *patch.Priority
	}
	switch {
	case patch.ClearDueDate:
		ca.DueDate = nil
	case patch.DueDate != nil:
		due := *patch.DueDate
		ca.DueDate = &due
	}

	if err := s.actions.Save(ctx, ca); err != nil {
		return nil, err
	}
	s.reindex(ctx, *ca)
	return ca, nil
}

// UpdateActionStatus moves an action through its lifecycle.
func (s *AuditService) UpdateActionStatus(ctx context.Context, id string, status models.ActionStatus) (*models.CorrectiveAction, error) {
	if !status.Storable() {
		return nil, &engine.ValidationError{Field: "status", Reason: "unsupported status " + string(status)}
	}
	ca, err := s.actions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := engine.ApplyStatus(ca, status, timeNow()); err != nil {
		return nil, err
	}
	if err := s.actions.Save(ctx, ca); err != nil {
		return nil, err
	}

	s.metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	s.logger.Info("corrective action status changed",
		zap.String("action_id", ca.ID), zap.String("status", string(status)))
	s.reindex(ctx, *ca)
	return ca, nil
}

// BulkUpdateActionStatus applies status to every id. A failing item does not
// stop the rest; the returned error joins the distinct failures.
func (s *AuditService) BulkUpdateActionStatus(ctx context.Context, ids []string, status models.ActionStatus) ([]models.StatusOutcome, error) {
	if !status.Storable() {
		return nil, &engine.ValidationError{Field: "status", Reason: "unsupported status " + string(status)}
	}
	if len(ids) == 0 {
		return nil, &engine.ValidationError{Field: "ids", Reason: "select at least one action"}
	}

	seen := make(map[string]struct{}, len(ids))
	outcomes := make([]models.StatusOutcome, 0, len(ids))
	var errs []error
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		out := models.StatusOutcome{ActionID: id}
		if ca, err := s.UpdateActionStatus(ctx, id, status); err != nil {
			out.Error = err.Error()
			errs = append(errs, err)
		} else {
			out.Status = ca.Status
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, engine.Aggregate(errs)
}

func (s *AuditService) DeleteAction(ctx context.Context, id string) error {
	if err := s.actions.Delete(ctx, id); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.Delete(ctx, id); err != nil {
			s.logger.Warn("remove corrective action from index", zap.String("action_id", id), zap.Error(err))
		}
	}
	s.logger.Info("corrective action deleted", zap.String("action_id", id))
	return nil
}

func (s *AuditService) GetAction(ctx context.Context, id string) (*ActionView, error) {
	ca, err := s.actions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := view(*ca, timeNow())
	return &v, nil
}

// ListActions pages through actions. The overdue filter is evaluated against
// the service clock.
func (s *AuditService) ListActions(ctx context.Context, filter models.ActionFilter) (*ActionViewPage, error) {
	if filter.Status != "" && !filter.Status.Storable() && filter.Status != models.ActionStatusOverdue {
		return nil, &engine.ValidationError{Field: "status", Reason: "unsupported status " + string(filter.Status)}
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, &engine.ValidationError{Field: "priority", Reason: "unknown priority " + string(filter.Priority)}
	}
	now := timeNow()
	filter.Now = now

	page, err := s.actions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &ActionViewPage{
		Items: make([]ActionView, 0, len(page.Items)),
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}
	for _, a := range page.Items {
		out.Items = append(out.Items, view(a, now))
	}
	return out, nil
}

// SearchActions runs a full-text query over a plan's actions and returns
// them in relevance order.
func (s *AuditService) SearchActions(ctx context.Context, planID, query string) ([]ActionView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &engine.ValidationError{Field: "q", Reason: "required"}
	}
	if s.index == nil {
		return nil, &engine.DependencyError{Op: "search corrective actions", Err: errSearchDisabled}
	}

	ids, err := s.index.Search(ctx, planID, query)
	if err != nil {
		return nil, engine.Dependency("search corrective actions", err)
	}
	found, err := s.actions.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.CorrectiveAction, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	now := timeNow()
	views := make([]ActionView, 0, len(found))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			views = append(views, view(a, now))
		}
	}
	return views, nil
}

func (s *AuditService) reindex(ctx context.Context, a models.CorrectiveAction) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, a); err != nil {
		s.logger.Warn("index corrective action", zap.String("action_id", a.ID), zap.Error(err))
	}
}
