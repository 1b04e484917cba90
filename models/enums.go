package models

import (
	"errors"
	"strings"
)

// AssetStatus is the observed state an auditor records for an asset.
type AssetStatus string

const (
	AssetStatusInUse                AssetStatus = "In Use"
	AssetStatusInStorage            AssetStatus = "In Storage"
	AssetStatusMissing              AssetStatus = "Missing"
	AssetStatusBroken               AssetStatus = "Broken"
	AssetStatusScheduledForDisposal AssetStatus = "Scheduled for Disposal"
)

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusInUse, AssetStatusInStorage, AssetStatusMissing,
		AssetStatusBroken, AssetStatusScheduledForDisposal:
		return true
	}
	return false
}

type DiscrepancyType string

const (
	DiscrepancyMissing        DiscrepancyType = "missing"
	DiscrepancyBroken         DiscrepancyType = "broken"
	DiscrepancyDisposal       DiscrepancyType = "disposal"
	DiscrepancyLocationChange DiscrepancyType = "location_change"
	DiscrepancyUserChange     DiscrepancyType = "user_change"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank orders priorities for sorting, critical first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// ActionStatus is the persisted status of a corrective action.
// ActionStatusOverdue is display-only and never stored.
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusOverdue    ActionStatus = "overdue"
)

// Storable reports whether the status may be written to the database.
func (s ActionStatus) Storable() bool {
	switch s {
	case ActionStatusPending, ActionStatusInProgress, ActionStatusCompleted:
		return true
	}
	return false
}

type EmployeeRole string

const (
	RoleEmployee EmployeeRole = "employee"
	RoleAuditor  EmployeeRole = "auditor"
)

var errInvalidRole = errors.New("invalid employee role")

// ParseEmployeeRole accepts an empty string as "any role".
func ParseEmployeeRole(s string) (EmployeeRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(RoleEmployee):
		return RoleEmployee, nil
	case string(RoleAuditor):
		return RoleAuditor, nil
	}
	return "", errInvalidRole
}

type ReminderOutcome string

const (
	ReminderSent   ReminderOutcome = "sent"
	ReminderFailed ReminderOutcome = "failed"
)
