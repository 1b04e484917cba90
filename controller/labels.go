package controller

import (
	"strings"
	"time"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
)

// Auditors' handhelds submit the Japanese labels; the API accepts those or
// the canonical English values.
var assetStatusLabels = map[string]models.AssetStatus{
	"使用中":  models.AssetStatusInUse,
	"保管中":  models.AssetStatusInStorage,
	"紛失":   models.AssetStatusMissing,
	"故障":   models.AssetStatusBroken,
	"廃棄予定": models.AssetStatusScheduledForDisposal,
}

var canonicalAssetStatuses = []models.AssetStatus{
	models.AssetStatusInUse,
	models.AssetStatusInStorage,
	models.AssetStatusMissing,
	models.AssetStatusBroken,
	models.AssetStatusScheduledForDisposal,
}

func parseAssetStatus(raw string) (models.AssetStatus, error) {
	s := strings.TrimSpace(raw)
	if status, ok := assetStatusLabels[s]; ok {
		return status, nil
	}
	for _, status := range canonicalAssetStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", &engine.ValidationError{Field: "status", Reason: "unknown asset status " + raw}
}

// assetStatusLabel is the Japanese label for status, or "" when the status is
// unset.
func assetStatusLabel(status models.AssetStatus) string {
	for label, s := range assetStatusLabels {
		if s == status {
			return label
		}
	}
	return ""
}

type assetResponse struct {
	models.AuditedAsset
	StatusLabel string `json:"status_label,omitempty"`
}

func newAssetResponse(a models.AuditedAsset) assetResponse {
	return assetResponse{AuditedAsset: a, StatusLabel: assetStatusLabel(a.CurrentStatus)}
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, &engine.ValidationError{Field: field, Reason: "expected YYYY-MM-DD, got " + raw}
}
