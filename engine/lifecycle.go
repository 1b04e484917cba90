package engine

import (
	"time"

	"github.com/Itish41/asset-audit/models"
)

// ApplyStatus moves an action to status. Entering completed stamps today's
// date; leaving completed clears it. Overdue is derived and cannot be stored.
func ApplyStatus(a *models.CorrectiveAction, status models.ActionStatus, now time.Time) error {
	if !status.Storable() {
		return &ValidationError{Field: "status", Reason: "unsupported status " + string(status)}
	}

	switch {
	case status == models.ActionStatusCompleted && a.Status != models.ActionStatusCompleted:
		today := truncateDay(now)
		a.CompletedDate = &today
	case status != models.ActionStatusCompleted:
		a.CompletedDate = nil
	}
	a.Status = status
	return nil
}

// IsOverdue reports whether an action is past due. It is a pure function of
// its inputs and never persisted.
func IsOverdue(status models.ActionStatus, due *time.Time, now time.Time) bool {
	return status != models.ActionStatusCompleted && due != nil && due.Before(now)
}

// DisplayStatus is the status shown to operators.
func DisplayStatus(a models.CorrectiveAction, now time.Time) models.ActionStatus {
	if IsOverdue(a.Status, a.DueDate, now) {
		return models.ActionStatusOverdue
	}
	return a.Status
}

// DefaultDueDate is the due date given to generated actions.
func DefaultDueDate(now time.Time, months int) time.Time {
	if months <= 0 {
		months = 1
	}
	return truncateDay(now).AddDate(0, months, 0)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
