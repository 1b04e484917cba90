package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"go.uber.org/zap"
)

var errNoDispatcher = errors.New("no reminder dispatcher configured")

// SendReminders sends one consolidated reminder per assignee covering all of
// that assignee's open, dated actions in the plan. A failed dispatch is
// recorded and counted; the other assignees are still notified.
func (s *AuditService) SendReminders(ctx context.Context, planID string) (*models.ReminderResult, error) {
	if _, err := s.plans.Get(ctx, planID); err != nil {
		return nil, err
	}
	if s.dispatcher == nil {
		return nil, &engine.DependencyError{Op: "send reminders", Err: errNoDispatcher}
	}

	actions, err := s.actions.ListByPlan(ctx, planID)
	if err != nil {
		return nil, engine.Dependency("load corrective actions", err)
	}
	batches := engine.BatchByAssignee(actions)
	assignees := engine.Assignees(batches)

	result := &models.ReminderResult{Outcomes: make([]models.ReminderOutcomeItem, 0, len(assignees))}
	if len(assignees) == 0 {
		return result, nil
	}

	employees, err := s.roster.ListByIDs(ctx, assignees)
	if err != nil {
		return nil, engine.Dependency("load assignees", err)
	}
	byID := make(map[string]models.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	var errs []error
	for _, id := range assignees {
		batch := batches[id]
		ids := make([]string, 0, len(batch))
		for _, a := range batch {
			ids = append(ids, a.ID)
		}

		emp, ok := byID[id]
		if !ok {
			emp = models.Employee{ID: id}
		}
		reminder := models.Reminder{
			AuditPlanID: planID,
			Assignee:    emp.Candidate(),
			Email:       emp.Email,
			Actions:     batch,
		}

		out := models.ReminderOutcomeItem{AssigneeID: id, ActionIDs: ids, Outcome: models.ReminderSent}
		if err := s.dispatcher.Dispatch(ctx, reminder); err != nil {
			out.Outcome = models.ReminderFailed
			out.Error = err.Error()
			result.TotalFailed++
			errs = append(errs, engine.Dependency("dispatch reminder", err))
			s.logger.Warn("reminder dispatch failed", zap.String("plan_id", planID),
				zap.String("assignee", id), zap.Error(err))
		} else {
			result.TotalSent++
		}
		s.metrics.RemindersSent.WithLabelValues(string(out.Outcome)).Inc()
		result.Outcomes = append(result.Outcomes, out)
		s.recordReminder(ctx, planID, out)
	}

	s.logger.Info("reminders sent", zap.String("plan_id", planID),
		zap.Int("sent", result.TotalSent), zap.Int("failed", result.TotalFailed))
	return result, engine.Aggregate(errs)
}

func (s *AuditService) recordReminder(ctx context.Context, planID string, out models.ReminderOutcomeItem) {
	if s.reminders == nil {
		return
	}
	ids, err := json.Marshal(out.ActionIDs)
	if err != nil {
		s.logger.Warn("encode reminder action ids", zap.Error(err))
		return
	}
	entry := &models.ReminderLog{
		AuditPlanID: planID,
		AssigneeID:  out.AssigneeID,
		ActionIDs:   ids,
		Outcome:     out.Outcome,
		Error:       out.Error,
	}
	if err := s.reminders.Create(ctx, entry); err != nil {
		s.logger.Warn("record reminder", zap.String("plan_id", planID),
			zap.String("assignee", out.AssigneeID), zap.Error(err))
	}
}

// ReminderHistory lists the reminders recorded for a plan, newest first.
func (s *AuditService) ReminderHistory(ctx context.Context, planID string) ([]models.ReminderLog, error) {
	if s.reminders == nil {
		return []models.ReminderLog{}, nil
	}
	return s.reminders.ListByPlan(ctx, planID)
}
