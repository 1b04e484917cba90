package services

import (
	"context"
	"strings"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"go.uber.org/zap"
)

func (s *AuditService) ListAssets(ctx context.Context, planID string) ([]models.AuditedAsset, error) {
	if _, err := s.plans.Get(ctx, planID); err != nil {
		return nil, err
	}
	return s.assets.ListByPlan(ctx, planID)
}

// UpdateAssetStatus records what the auditor observed. The baseline fields
// are never touched.
func (s *AuditService) UpdateAssetStatus(ctx context.Context, id string, update models.AssetStatusUpdate) (*models.AuditedAsset, error) {
	if !update.Status.Valid() {
		return nil, &engine.ValidationError{Field: "status", Reason: "unknown asset status " + string(update.Status)}
	}
	if update.Location != nil {
		loc := strings.TrimSpace(*update.Location)
		update.Location = &loc
	}
	if update.ReassignedUser != nil {
		user := strings.TrimSpace(*update.ReassignedUser)
		update.ReassignedUser = &user
	}

	asset, err := s.assets.UpdateStatus(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info("asset status recorded",
		zap.String("audit_asset_id", asset.ID), zap.String("status", string(asset.CurrentStatus)))
	return asset, nil
}

// ResolveAsset closes out an asset's finding without a corrective action.
func (s *AuditService) ResolveAsset(ctx context.Context, id string, notes *string) (*models.AuditedAsset, error) {
	asset, err := s.assets.SetResolved(ctx, id, true, notes)
	if err != nil {
		return nil, err
	}
	s.logger.Info("asset resolved", zap.String("audit_asset_id", asset.ID))
	return asset, nil
}

// Candidates ranks the roster for location. An empty role searches every
// employee.
func (s *AuditService) Candidates(ctx context.Context, location string, role models.EmployeeRole) (engine.Tiers, error) {
	roster, err := s.roster.List(ctx, role)
	if err != nil {
		return engine.Tiers{}, engine.Dependency("load roster", err)
	}
	candidates := make([]models.Candidate, 0, len(roster))
	for _, e := range roster {
		candidates = append(candidates, e.Candidate())
	}
	return engine.Resolve(location, candidates), nil
}
