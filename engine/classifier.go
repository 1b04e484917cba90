package engine

import (
	"fmt"

	"github.com/Itish41/asset-audit/models"
)

// Canned remediation texts.
const (
	ActionLocateMissing    = "Locate missing asset and verify its condition"
	ActionScheduleRepair   = "Schedule repair or replacement assessment"
	ActionVerifyDisposal   = "Verify disposal requirements and schedule removal"
	ActionUpdateLocation   = "Update asset location in inventory system"
	actionAssignedFormat   = "Update inventory records: asset assigned to %s"
	actionReassignedFormat = "Update inventory records: asset reassigned from %s to %s"
)

// Discrepancy is a detected, not yet formalized, mismatch for one asset.
type Discrepancy struct {
	AuditAssetID string                 `json:"audit_asset_id"`
	AssetTag     string                 `json:"asset_tag"`
	Type         models.DiscrepancyType `json:"type"`
	Issue        string                 `json:"issue"`
	Action       string                 `json:"action"`
	Priority     models.Priority        `json:"priority"`
	Location     string                 `json:"location"`
}

// Classify evaluates the rules in priority order and returns the first match.
// Resolved assets never classify.
func Classify(a models.AuditedAsset) (Discrepancy, bool) {
	if a.Resolved {
		return Discrepancy{}, false
	}

	delta := Compare(a)
	d := Discrepancy{
		AuditAssetID: a.ID,
		AssetTag:     a.AssetTag,
		Location:     a.EffectiveLocation(),
	}
	label := fmt.Sprintf("%s (%s)", a.AssetTag, a.Model)

	switch {
	case delta.Status == models.AssetStatusMissing:
		d.Type = models.DiscrepancyMissing
		d.Priority = models.PriorityHigh
		d.Issue = fmt.Sprintf("Asset %s was not found during the audit", label)
		d.Action = ActionLocateMissing
	case delta.Status == models.AssetStatusBroken:
		d.Type = models.DiscrepancyBroken
		d.Priority = models.PriorityHigh
		d.Issue = fmt.Sprintf("Asset %s was reported broken", label)
		d.Action = ActionScheduleRepair
	case delta.Status == models.AssetStatusScheduledForDisposal:
		d.Type = models.DiscrepancyDisposal
		d.Priority = models.PriorityLow
		d.Issue = fmt.Sprintf("Asset %s is scheduled for disposal", label)
		d.Action = ActionVerifyDisposal
	case delta.LocationChanged:
		d.Type = models.DiscrepancyLocationChange
		d.Priority = models.PriorityMedium
		d.Issue = fmt.Sprintf("Asset %s was found at %s instead of %s", label, delta.ToLocation, orNone(delta.FromLocation))
		d.Action = ActionUpdateLocation
	case delta.UserChanged:
		d.Type = models.DiscrepancyUserChange
		d.Priority = models.PriorityMedium
		if delta.PreviouslyUnassigned {
			d.Issue = fmt.Sprintf("Asset %s is in use by %s but was unassigned", label, delta.ToUser)
			d.Action = fmt.Sprintf(actionAssignedFormat, delta.ToUser)
		} else {
			d.Issue = fmt.Sprintf("Asset %s is in use by %s instead of %s", label, delta.ToUser, delta.FromUser)
			d.Action = fmt.Sprintf(actionReassignedFormat, delta.FromUser, delta.ToUser)
		}
	default:
		return Discrepancy{}, false
	}
	return d, true
}

// DetectDiscrepancies classifies every asset that has no corrective action yet.
func DetectDiscrepancies(assets []models.AuditedAsset, actioned map[string]struct{}) []Discrepancy {
	out := make([]Discrepancy, 0)
	for _, a := range assets {
		if _, ok := actioned[a.ID]; ok {
			continue
		}
		if d, ok := Classify(a); ok {
			out = append(out, d)
		}
	}
	return out
}

func orNone(s string) string {
	if s == "" {
		return "no recorded location"
	}
	return s
}
