package services

import (
	"context"
	"time"

	"github.com/Itish41/asset-audit/models"
	"github.com/stretchr/testify/mock"
)

// FixedTime is the service clock during tests.
var FixedTime = time.Date(2025, time.March, 5, 9, 30, 0, 0, time.UTC)

type MockAssetStore struct{ mock.Mock }

func (m *MockAssetStore) ListByPlan(ctx context.Context, planID string) ([]models.AuditedAsset, error) {
	args := m.Called(ctx, planID)
	assets, _ := args.Get(0).([]models.AuditedAsset)
	return assets, args.Error(1)
}

func (m *MockAssetStore) Get(ctx context.Context, id string) (*models.AuditedAsset, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.AuditedAsset)
	return a, args.Error(1)
}

func (m *MockAssetStore) UpdateStatus(ctx context.Context, id string, update models.AssetStatusUpdate) (*models.AuditedAsset, error) {
	args := m.Called(ctx, id, update)
	a, _ := args.Get(0).(*models.AuditedAsset)
	return a, args.Error(1)
}

func (m *MockAssetStore) SetResolved(ctx context.Context, id string, resolved bool, notes *string) (*models.AuditedAsset, error) {
	args := m.Called(ctx, id, resolved, notes)
	a, _ := args.Get(0).(*models.AuditedAsset)
	return a, args.Error(1)
}

type MockActionStore struct{ mock.Mock }

func (m *MockActionStore) Create(ctx context.Context, action *models.CorrectiveAction) error {
	return m.Called(ctx, action).Error(0)
}

func (m *MockActionStore) Get(ctx context.Context, id string) (*models.CorrectiveAction, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.CorrectiveAction)
	return a, args.Error(1)
}

func (m *MockActionStore) Save(ctx context.Context, action *models.CorrectiveAction) error {
	return m.Called(ctx, action).Error(0)
}

func (m *MockActionStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockActionStore) ListByPlan(ctx context.Context, planID string) ([]models.CorrectiveAction, error) {
	args := m.Called(ctx, planID)
	actions, _ := args.Get(0).([]models.CorrectiveAction)
	return actions, args.Error(1)
}

func (m *MockActionStore) ListByIDs(ctx context.Context, ids []string) ([]models.CorrectiveAction, error) {
	args := m.Called(ctx, ids)
	actions, _ := args.Get(0).([]models.CorrectiveAction)
	return actions, args.Error(1)
}

func (m *MockActionStore) ActionedAssetIDs(ctx context.Context, planID string) (map[string]struct{}, error) {
	args := m.Called(ctx, planID)
	ids, _ := args.Get(0).(map[string]struct{})
	return ids, args.Error(1)
}

func (m *MockActionStore) List(ctx context.Context, filter models.ActionFilter) (*models.ActionPage, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(*models.ActionPage)
	return page, args.Error(1)
}

type MockPlanStore struct{ mock.Mock }

func (m *MockPlanStore) Get(ctx context.Context, id string) (*models.AuditPlan, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.AuditPlan)
	return p, args.Error(1)
}

type MockRosterStore struct{ mock.Mock }

func (m *MockRosterStore) List(ctx context.Context, role models.EmployeeRole) ([]models.Employee, error) {
	args := m.Called(ctx, role)
	e, _ := args.Get(0).([]models.Employee)
	return e, args.Error(1)
}

func (m *MockRosterStore) ListByIDs(ctx context.Context, ids []string) ([]models.Employee, error) {
	args := m.Called(ctx, ids)
	e, _ := args.Get(0).([]models.Employee)
	return e, args.Error(1)
}

type MockReminderLogStore struct{ mock.Mock }

func (m *MockReminderLogStore) Create(ctx context.Context, entry *models.ReminderLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockReminderLogStore) ListByPlan(ctx context.Context, planID string) ([]models.ReminderLog, error) {
	args := m.Called(ctx, planID)
	logs, _ := args.Get(0).([]models.ReminderLog)
	return logs, args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, reminder models.Reminder) error {
	return m.Called(ctx, reminder).Error(0)
}

type MockActionIndex struct{ mock.Mock }

func (m *MockActionIndex) Index(ctx context.Context, action models.CorrectiveAction) error {
	return m.Called(ctx, action).Error(0)
}

func (m *MockActionIndex) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockActionIndex) Search(ctx context.Context, planID, query string) ([]string, error) {
	args := m.Called(ctx, planID, query)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type MockArchiver struct{ mock.Mock }

func (m *MockArchiver) Archive(ctx context.Context, key string, body []byte) (string, error) {
	args := m.Called(ctx, key, body)
	return args.String(0), args.Error(1)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	args := m.Called(ctx, key, ttl)
	release, _ := args.Get(0).(func(context.Context) error)
	return release, args.Error(1)
}

type testDeps struct {
	assets     *MockAssetStore
	actions    *MockActionStore
	plans      *MockPlanStore
	roster     *MockRosterStore
	reminders  *MockReminderLogStore
	dispatcher *MockDispatcher
	index      *MockActionIndex
	archiver   *MockArchiver
	locker     *MockLocker
}

func newTestService() (*AuditService, *testDeps) {
	d := &testDeps{
		assets:     new(MockAssetStore),
		actions:    new(MockActionStore),
		plans:      new(MockPlanStore),
		roster:     new(MockRosterStore),
		reminders:  new(MockReminderLogStore),
		dispatcher: new(MockDispatcher),
		index:      new(MockActionIndex),
		archiver:   new(MockArchiver),
		locker:     new(MockLocker),
	}
	svc := NewAuditService(Deps{
		Assets:     d.assets,
		Actions:    d.actions,
		Plans:      d.plans,
		Roster:     d.roster,
		Reminders:  d.reminders,
		Dispatcher: d.dispatcher,
		Index:      d.index,
		Archiver:   d.archiver,
		Locker:     d.locker,
	}, Options{})
	d.index.On("Index", mock.Anything, mock.Anything).Return(nil).Maybe()
	return svc, d
}
