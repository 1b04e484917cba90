package models

import "time"

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// ActionFilter narrows a corrective-action listing.
type ActionFilter struct {
	AuditPlanID string
	// Status may be ActionStatusOverdue, which is evaluated against Now.
	Status     ActionStatus
	Priority   Priority
	AssignedTo string
	Unassigned bool
	Now        time.Time

	SortBy   string // due_date, priority or created_at
	SortDesc bool
	Page     int
	Limit    int
}

// Normalize clamps paging values.
func (f *ActionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	switch f.SortBy {
	case "due_date", "priority", "created_at":
	default:
		f.SortBy = "created_at"
	}
}

type ActionPage struct {
	Items []CorrectiveAction `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// AssetStatusUpdate is what an auditor submits for one asset.
type AssetStatusUpdate struct {
	Status   AssetStatus
	Location *string
	Notes    *string
	// ReassignedUser, when set, records the asset's new user.
	ReassignedUser *string
}
