package repository

import (
	"context"
	"fmt"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"gorm.io/gorm"
)

type AssetRepo struct {
	db *gorm.DB
}

func NewAssetRepo(db *gorm.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

// ListByPlan returns the audit assets of a plan ordered by asset tag.
func (r *AssetRepo) ListByPlan(ctx context.Context, planID string) ([]models.AuditedAsset, error) {
	assets := make([]models.AuditedAsset, 0)
	if err := r.db.WithContext(ctx).
		Where("audit_plan_id = ?", planID).
		Order("asset_tag").
		Find(&assets).Error; err != nil {
		return nil, &engine.DependencyError{Op: "list audit assets", Err: err}
	}
	return assets, nil
}

func (r *AssetRepo) Get(ctx context.Context, id string) (*models.AuditedAsset, error) {
	var asset models.AuditedAsset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return nil, translate("audit asset", id, err)
	}
	return &asset, nil
}

// UpdateStatus records an auditor's observation. Baseline fields are never touched.
func (r *AssetRepo) UpdateStatus(ctx context.Context, id string, upd models.AssetStatusUpdate) (*models.AuditedAsset, error) {
	asset, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{
		"current_status": upd.Status,
	}
	if upd.Location != nil {
		changes["current_location"] = *upd.Location
	}
	if upd.Notes != nil {
		changes["auditor_notes"] = *upd.Notes
	}
	if upd.ReassignedUser != nil {
		changes["current_user"] = *upd.ReassignedUser
	}

	if err := r.db.WithContext(ctx).Model(asset).Updates(changes).Error; err != nil {
		return nil, &engine.DependencyError{Op: fmt.Sprintf("update audit asset %s", id), Err: err}
	}
	return r.Get(ctx, id)
}

// SetResolved closes (or reopens) an asset's finding without a corrective action.
func (r *AssetRepo) SetResolved(ctx context.Context, id string, resolved bool, notes *string) (*models.AuditedAsset, error) {
	changes := map[string]interface{}{"resolved": resolved}
	if notes != nil {
		changes["auditor_notes"] = *notes
	}
	res := r.db.WithContext(ctx).Model(&models.AuditedAsset{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, &engine.DependencyError{Op: fmt.Sprintf("resolve audit asset %s", id), Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &engine.NotFoundError{Kind: "audit asset", ID: id}
	}
	return r.Get(ctx, id)
}
