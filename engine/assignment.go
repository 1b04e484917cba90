package engine

import (
	"strings"

	"github.com/Itish41/asset-audit/models"
)

// AssignmentReason explains how a default assignee was picked.
type AssignmentReason string

const (
	AssignedCurrentUser     AssignmentReason = "current_user"
	AssignedLocationAuditor AssignmentReason = "location_auditor"
	Unassigned              AssignmentReason = "unassigned"
)

type Assignment struct {
	EmployeeID string           `json:"employee_id,omitempty"`
	Reason     AssignmentReason `json:"reason"`
}

// DefaultAssignee picks the single responsible party used when actions are
// generated in bulk:
//   - the asset's user (observed, else baseline) when it names a roster
//     employee; a user missing from the roster leaves the action unassigned;
//   - else the plan auditor assigned to exactly the discrepancy location;
//   - else nobody, which is a valid outcome left to manual triage.
func DefaultAssignee(asset models.AuditedAsset, d Discrepancy, roster []models.Employee, auditors []models.AuditorAssignment) Assignment {
	if user := normalize(asset.EffectiveUser()); user != "" {
		for _, e := range roster {
			if normalize(e.Name) == user {
				return Assignment{EmployeeID: e.ID, Reason: AssignedCurrentUser}
			}
		}
		return Assignment{Reason: Unassigned}
	}

	loc := normalize(d.Location)
	if loc != "" {
		for _, a := range auditors {
			if normalize(a.Location) == loc && strings.TrimSpace(a.AuditorID) != "" {
				return Assignment{EmployeeID: a.AuditorID, Reason: AssignedLocationAuditor}
			}
		}
	}

	return Assignment{Reason: Unassigned}
}
