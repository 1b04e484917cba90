package controller

import (
	"context"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	services "github.com/Itish41/asset-audit/service"
	"github.com/stretchr/testify/mock"
)

type MockAuditAPI struct{ mock.Mock }

func (m *MockAuditAPI) ListAssets(ctx context.Context, planID string) ([]models.AuditedAsset, error) {
	args := m.Called(ctx, planID)
	v, _ := args.Get(0).([]models.AuditedAsset)
	return v, args.Error(1)
}

func (m *MockAuditAPI) UpdateAssetStatus(ctx context.Context, id string, update models.AssetStatusUpdate) (*models.AuditedAsset, error) {
	args := m.Called(ctx, id, update)
	v, _ := args.Get(0).(*models.AuditedAsset)
	return v, args.Error(1)
}

func (m *MockAuditAPI) ResolveAsset(ctx context.Context, id string, notes *string) (*models.AuditedAsset, error) {
	args := m.Called(ctx, id, notes)
	v, _ := args.Get(0).(*models.AuditedAsset)
	return v, args.Error(1)
}

func (m *MockAuditAPI) Discrepancies(ctx context.Context, planID string) ([]engine.Discrepancy, error) {
	args := m.Called(ctx, planID)
	v, _ := args.Get(0).([]engine.Discrepancy)
	return v, args.Error(1)
}

func (m *MockAuditAPI) BulkGenerate(ctx context.Context, planID string) (*models.GenerateResult, error) {
	args := m.Called(ctx, planID)
	v, _ := args.Get(0).(*models.GenerateResult)
	return v, args.Error(1)
}

func (m *MockAuditAPI) SendReminders(ctx context.Context, planID string) (*models.ReminderResult, error) {
	args := m.Called(ctx, planID)
	v, _ := args.Get(0).(*models.ReminderResult)
	return v, args.Error(1)
}

func (m *MockAuditAPI) ReminderHistory(ctx context.Context, planID string) ([]models.ReminderLog, error) {
	args := m.Called(ctx, planID)
	v, _ := args.Get(0).([]models.ReminderLog)
	return v, args.Error(1)
}

func (m *MockAuditAPI) ArchivePlan(ctx context.Context, planID string) (*services.ArchiveResult, error) {
	args := m.Called(ctx, planID)
	v, _ := args.Get(0).(*services.ArchiveResult)
	return v, args.Error(1)
}

func (m *MockAuditAPI) ListActions(ctx context.Context, filter models.ActionFilter) (*services.ActionViewPage, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).(*services.ActionViewPage)
	return v, args.Error(1)
}

func (m *MockAuditAPI) CreateAction(ctx context.Context, in services.NewAction) (*models.CorrectiveAction, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*models.CorrectiveAction)
	return v, args.Error(1)
}

func (m *MockAuditAPI) GetAction(ctx context.Context, id string) (*services.ActionView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*services.ActionView)
	return v, args.Error(1)
}

func (m *MockAuditAPI) EditAction(ctx context.Context, id string, patch services.ActionPatch) (*models.CorrectiveAction, error) {
	args := m.Called(ctx, id, patch)
	v, _ := args.Get(0).(*models.CorrectiveAction)
	return v, args.Error(1)
}

func (m *MockAuditAPI) UpdateActionStatus(ctx context.Context, id string, status models.ActionStatus) (*models.CorrectiveAction, error) {
	args := m.Called(ctx, id, status)
	v, _ := args.Get(0).(*models.CorrectiveAction)
	return v, args.Error(1)
}

func (m *MockAuditAPI) BulkUpdateActionStatus(ctx context.Context, ids []string, status models.ActionStatus) ([]models.StatusOutcome, error) {
	args := m.Called(ctx, ids, status)
	v, _ := args.Get(0).([]models.StatusOutcome)
	return v, args.Error(1)
}

func (m *MockAuditAPI) DeleteAction(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAuditAPI) SearchActions(ctx context.Context, planID, query string) ([]services.ActionView, error) {
	args := m.Called(ctx, planID, query)
	v, _ := args.Get(0).([]services.ActionView)
	return v, args.Error(1)
}

func (m *MockAuditAPI) Candidates(ctx context.Context, location string, role models.EmployeeRole) (engine.Tiers, error) {
	args := m.Called(ctx, location, role)
	v, _ := args.Get(0).(engine.Tiers)
	return v, args.Error(1)
}
