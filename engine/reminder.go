package engine

import (
	"sort"

	"github.com/Itish41/asset-audit/models"
)

// ReminderEligible reports whether an action should appear in a reminder.
func ReminderEligible(a models.CorrectiveAction) bool {
	return a.Status != models.ActionStatusCompleted && a.DueDate != nil && a.AssignedTo != ""
}

// BatchByAssignee groups reminder-eligible actions by assignee, keeping input order.
func BatchByAssignee(actions []models.CorrectiveAction) map[string][]models.CorrectiveAction {
	batches := make(map[string][]models.CorrectiveAction)
	for _, a := range actions {
		if !ReminderEligible(a) {
			continue
		}
		batches[a.AssignedTo] = append(batches[a.AssignedTo], a)
	}
	return batches
}

// Assignees returns the batch keys in a stable order.
func Assignees(batches map[string][]models.CorrectiveAction) []string {
	ids := make([]string, 0, len(batches))
	for id := range batches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
