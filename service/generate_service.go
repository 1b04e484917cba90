package services

import (
	"context"
	"fmt"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NothingToGenerate is the informational message of a bulk run that created
// no action.
const NothingToGenerate = "nothing new to generate"

type planState struct {
	assets   []models.AuditedAsset
	actioned map[string]struct{}
	roster   []models.Employee
}

// loadPlanState fetches a plan's assets, its actioned asset ids and,
// optionally, the roster concurrently.
func (s *AuditService) loadPlanState(ctx context.Context, planID string, withRoster bool) (*planState, error) {
	var st planState
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		assets, err := s.assets.ListByPlan(gctx, planID)
		if err != nil {
			return engine.Dependency("load audited assets", err)
		}
		st.assets = assets
		return nil
	})
	g.Go(func() error {
		ids, err := s.actions.ActionedAssetIDs(gctx, planID)
		if err != nil {
			return engine.Dependency("load actioned assets", err)
		}
		st.actioned = ids
		return nil
	})
	if withRoster {
		g.Go(func() error {
			roster, err := s.roster.List(gctx, "")
			if err != nil {
				return engine.Dependency("load roster", err)
			}
			st.roster = roster
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if st.actioned == nil {
		st.actioned = make(map[string]struct{})
	}
	return &st, nil
}

// Discrepancies lists the open findings of a plan: unresolved assets that
// classify to a discrepancy and carry no corrective action yet.
func (s *AuditService) Discrepancies(ctx context.Context, planID string) ([]engine.Discrepancy, error) {
	if _, err := s.plans.Get(ctx, planID); err != nil {
		return nil, err
	}
	st, err := s.loadPlanState(ctx, planID, false)
	if err != nil {
		return nil, err
	}
	return engine.DetectDiscrepancies(st.assets, st.actioned), nil
}

// BulkGenerate opens one corrective action per open discrepancy of the plan,
// assigned to the default assignee. Assets without a discrepancy or with an
// existing action are skipped, so repeated runs converge. Per-item failures
// are reported in the result and joined into the returned error.
func (s *AuditService) BulkGenerate(ctx context.Context, planID string) (*models.GenerateResult, error) {
	timer := timeNow()
	defer func() {
		s.metrics.OperationDuration.WithLabelValues("bulk_generate").Observe(timeNow().Sub(timer).Seconds())
	}()

	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockPlan(ctx, planID)
	defer unlock()

	st, err := s.loadPlanState(ctx, planID, true)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.AuditedAsset, len(st.assets))
	for _, a := range st.assets {
		byID[a.ID] = a
	}

	due := engine.DefaultDueDate(timeNow(), s.opts.DefaultDueMonths)
	result := &models.GenerateResult{Outcomes: make([]models.GenerateOutcome, 0)}
	var errs []error
	for _, d := range engine.DetectDiscrepancies(st.assets, st.actioned) {
		// the batch must not open two actions for one asset
		if _, done := st.actioned[d.AuditAssetID]; done {
			continue
		}
		st.actioned[d.AuditAssetID] = struct{}{}

		asset := byID[d.AuditAssetID]
		assignee := engine.DefaultAssignee(asset, d, st.roster, plan.AuditorAssignments)
		dueDate := due
		ca := &models.CorrectiveAction{
			AuditPlanID:  planID,
			AuditAssetID: d.AuditAssetID,
			Issue:        d.Issue,
			Action:       d.Action,
			AssignedTo:   assignee.EmployeeID,
			Priority:     d.Priority,
			Status:       models.ActionStatusPending,
			DueDate:      &dueDate,
		}

		out := models.GenerateOutcome{AuditAssetID: d.AuditAssetID, Reason: string(assignee.Reason)}
		if err := s.actions.Create(ctx, ca); err != nil {
			if engine.IsDuplicate(err) {
				// another writer got there first
				continue
			}
			out.Error = err.Error()
			result.Failed++
			result.Outcomes = append(result.Outcomes, out)
			errs = append(errs, err)
			s.logger.Warn("generate corrective action failed",
				zap.String("plan_id", planID), zap.String("audit_asset_id", d.AuditAssetID), zap.Error(err))
			continue
		}

		out.ActionID = ca.ID
		out.AssignedTo = ca.AssignedTo
		result.Created++
		result.Outcomes = append(result.Outcomes, out)
		s.metrics.DiscrepanciesDetected.WithLabelValues(string(d.Type)).Inc()
		s.metrics.ActionsCreated.WithLabelValues("bulk").Inc()
		s.reindex(ctx, *ca)
	}

	if result.Created == 0 && result.Failed == 0 {
		result.Message = NothingToGenerate
	}
	s.logger.Info("bulk generation finished",
		zap.String("plan_id", planID), zap.Int("created", result.Created), zap.Int("failed", result.Failed))
	return result, engine.Aggregate(errs)
}

// lockPlan serializes bulk generation per plan. Without a lock the run still
// proceeds; the store's open-action index rejects concurrent duplicates.
func (s *AuditService) lockPlan(ctx context.Context, planID string) func() {
	key := fmt.Sprintf("lock:audit-plan:%s", planID)
	if s.locker == nil {
		s.logger.Warn("lock not configured; proceeding without lock", zap.String("plan_id", planID))
		return func() {}
	}
	release, err := s.locker.Obtain(ctx, key, s.opts.LockTTL)
	if err != nil {
		s.logger.Warn("could not obtain plan lock; proceeding without lock",
			zap.String("plan_id", planID), zap.Error(err))
		return func() {}
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("release plan lock", zap.String("plan_id", planID), zap.Error(err))
		}
	}
}
