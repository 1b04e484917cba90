package models

// Reminder is one consolidated notification for a single assignee.
type Reminder struct {
	AuditPlanID string             `json:"audit_plan_id"`
	Assignee    Candidate          `json:"assignee"`
	Email       string             `json:"email,omitempty"`
	Actions     []CorrectiveAction `json:"actions"`
}

// ReminderOutcomeItem reports what happened to one assignee's reminder.
type ReminderOutcomeItem struct {
	AssigneeID string          `json:"assignee_id"`
	ActionIDs  []string        `json:"action_ids"`
	Outcome    ReminderOutcome `json:"outcome"`
	Error      string          `json:"error,omitempty"`
}

// ReminderResult summarizes a reminder run.
type ReminderResult struct {
	TotalSent   int                   `json:"total_sent"`
	TotalFailed int                   `json:"total_failed"`
	Outcomes    []ReminderOutcomeItem `json:"outcomes"`
}

// GenerateOutcome reports what happened to one discrepancy during bulk generation.
type GenerateOutcome struct {
	AuditAssetID string `json:"audit_asset_id"`
	ActionID     string `json:"action_id,omitempty"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	Reason       string `json:"assignment_reason,omitempty"`
	Error        string `json:"error,omitempty"`
}

type GenerateResult struct {
	Created  int               `json:"created"`
	Failed   int               `json:"failed"`
	Outcomes []GenerateOutcome `json:"outcomes"`
	Message  string            `json:"message,omitempty"`
}

// StatusOutcome reports one action of a bulk status change.
type StatusOutcome struct {
	ActionID string       `json:"action_id"`
	Status   ActionStatus `json:"status,omitempty"`
	Error    string       `json:"error,omitempty"`
}
