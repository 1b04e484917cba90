package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"go.uber.org/zap"
)

var errNoArchiver = errors.New("report storage is not configured")

// PlanReport is the snapshot written to the report archive.
type PlanReport struct {
	Plan          models.AuditPlan      `json:"plan"`
	GeneratedAt   time.Time             `json:"generated_at"`
	Assets        []models.AuditedAsset `json:"assets"`
	Discrepancies []engine.Discrepancy  `json:"discrepancies"`
	Actions       []ActionView          `json:"actions"`
}

type ArchiveResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
}

// ArchivePlan renders the plan's current state as JSON and stores it.
func (s *AuditService) ArchivePlan(ctx context.Context, planID string) (*ArchiveResult, error) {
	if s.archiver == nil {
		return nil, &engine.DependencyError{Op: "archive plan report", Err: errNoArchiver}
	}
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	st, err := s.loadPlanState(ctx, planID, false)
	if err != nil {
		return nil, err
	}
	actions, err := s.actions.ListByPlan(ctx, planID)
	if err != nil {
		return nil, engine.Dependency("load corrective actions", err)
	}

	now := timeNow()
	report := PlanReport{
		Plan:          *plan,
		GeneratedAt:   now.UTC(),
		Assets:        st.assets,
		Discrepancies: engine.DetectDiscrepancies(st.assets, st.actioned),
		Actions:       make([]ActionView, 0, len(actions)),
	}
	for _, a := range actions {
		report.Actions = append(report.Actions, view(a, now))
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan report: %w", err)
	}

	key := fmt.Sprintf("reports/%s/%s.json", planID, now.UTC().Format("20060102T150405Z"))
	location, err := s.archiver.Archive(ctx, key, body)
	if err != nil {
		return nil, engine.Dependency("archive plan report", err)
	}
	s.logger.Info("plan report archived", zap.String("plan_id", planID), zap.String("key", key))
	return &ArchiveResult{Key: key, Location: location}, nil
}
