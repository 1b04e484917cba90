package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	services "github.com/Itish41/asset-audit/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(api *MockAuditAPI) *gin.Engine {
	r := gin.New()
	NewAuditController(api, nil).RegisterRoutes(r)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &engine.ValidationError{Field: "audit_asset_id", Reason: "required"}, http.StatusBadRequest},
		{"duplicate", &engine.DuplicateActionError{AuditAssetID: "a1", ExistingActionID: "x"}, http.StatusConflict},
		{"not found", &engine.NotFoundError{Kind: "corrective action", ID: "x"}, http.StatusNotFound},
		{"dependency", engine.Dependency("load roster", errors.New("connection refused")), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAuditAPI)
			api.On("GetAction", mock.Anything, "x").Return(nil, tt.err)

			w := doRequest(newTestRouter(api), http.MethodGet, "/actions/x", "")
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.err.Error(), decode(t, w)["error"])
		})
	}
}

func TestUpdateAssetStatus_AcceptsLocalizedLabels(t *testing.T) {
	tests := []struct {
		label string
		want  models.AssetStatus
	}{
		{"紛失", models.AssetStatusMissing},
		{"故障", models.AssetStatusBroken},
		{"廃棄予定", models.AssetStatusScheduledForDisposal},
		{"使用中", models.AssetStatusInUse},
		{"保管中", models.AssetStatusInStorage},
		{"in storage", models.AssetStatusInStorage},
		{"Missing", models.AssetStatusMissing},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			api := new(MockAuditAPI)
			api.On("UpdateAssetStatus", mock.Anything, "asset-1", mock.MatchedBy(func(u models.AssetStatusUpdate) bool {
				return u.Status == tt.want && u.Location != nil && *u.Location == "Osaka-2F"
			})).Return(&models.AuditedAsset{ID: "asset-1", CurrentStatus: tt.want}, nil)

			body := `{"status":"` + tt.label + `","location":"Osaka-2F"}`
			w := doRequest(newTestRouter(api), http.MethodPut, "/assets/asset-1/status", body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			asset := decode(t, w)["asset"].(map[string]any)
			assert.Equal(t, string(tt.want), asset["current_status"])
			assert.NotEmpty(t, asset["status_label"])
			api.AssertExpectations(t)
		})
	}
}

func TestUpdateAssetStatus_RejectsUnknownLabel(t *testing.T) {
	api := new(MockAuditAPI)
	w := doRequest(newTestRouter(api), http.MethodPut, "/assets/asset-1/status", `{"status":"lost-ish"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	api.AssertNotCalled(t, "UpdateAssetStatus", mock.Anything, mock.Anything, mock.Anything)

	w = doRequest(newTestRouter(api), http.MethodPut, "/assets/asset-1/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotNil(t, decode(t, w)["details"])
}

func TestResolveAsset_BodyOptional(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("ResolveAsset", mock.Anything, "asset-1", (*string)(nil)).
		Return(&models.AuditedAsset{ID: "asset-1", Resolved: true}, nil)

	w := doRequest(newTestRouter(api), http.MethodPost, "/assets/asset-1/resolve", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["asset"].(map[string]any)["resolved"])
}

func TestCreateAction(t *testing.T) {
	api := new(MockAuditAPI)
	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	api.On("CreateAction", mock.Anything, services.NewAction{
		AuditAssetID: "asset-1",
		Priority:     models.PriorityHigh,
		DueDate:      &due,
	}).Return(&models.CorrectiveAction{ID: "ca-1", AuditAssetID: "asset-1", Status: models.ActionStatusPending}, nil)

	w := doRequest(newTestRouter(api), http.MethodPost, "/actions",
		`{"audit_asset_id":"asset-1","priority":"high","due_date":"2025-04-01"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ca-1", decode(t, w)["action"].(map[string]any)["id"])
}

func TestCreateAction_BadInput(t *testing.T) {
	api := new(MockAuditAPI)
	r := newTestRouter(api)

	w := doRequest(r, http.MethodPost, "/actions", `{"audit_asset_id":"asset-1","priority":"urgent"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/actions", `{"audit_asset_id":"asset-1","due_date":"next week"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "due_date")

	api.AssertNotCalled(t, "CreateAction", mock.Anything, mock.Anything)
}

func TestCreateAction_Duplicate(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("CreateAction", mock.Anything, mock.Anything).
		Return(nil, &engine.DuplicateActionError{AuditAssetID: "asset-1", ExistingActionID: "ca-1"})

	w := doRequest(newTestRouter(api), http.MethodPost, "/actions", `{"audit_asset_id":"asset-1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w)["error"], "ca-1")
}

func TestEditAction(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("EditAction", mock.Anything, "ca-1", mock.MatchedBy(func(p services.ActionPatch) bool {
		return p.Priority != nil && *p.Priority == models.PriorityCritical &&
			p.Notes != nil && *p.Notes == "escalated" &&
			p.Issue == nil && p.ClearDueDate
	})).Return(&models.CorrectiveAction{ID: "ca-1", Priority: models.PriorityCritical}, nil)

	w := doRequest(newTestRouter(api), http.MethodPatch, "/actions/ca-1",
		`{"priority":"critical","notes":"escalated","clear_due_date":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	api.AssertExpectations(t)
}

func TestUpdateActionStatus(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("UpdateActionStatus", mock.Anything, "ca-1", models.ActionStatusOverdue).
		Return(nil, &engine.ValidationError{Field: "status", Reason: "unsupported status overdue"})
	api.On("UpdateActionStatus", mock.Anything, "ca-1", models.ActionStatusCompleted).
		Return(&models.CorrectiveAction{ID: "ca-1", Status: models.ActionStatusCompleted}, nil)

	r := newTestRouter(api)
	w := doRequest(r, http.MethodPut, "/actions/ca-1/status", `{"status":"overdue"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/actions/ca-1/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode(t, w)["action"].(map[string]any)["status"])
}

func TestBulkUpdateActionStatus_PartialFailure(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("BulkUpdateActionStatus", mock.Anything, []string{"a", "b"}, models.ActionStatusInProgress).
		Return([]models.StatusOutcome{
			{ActionID: "a", Status: models.ActionStatusInProgress},
			{ActionID: "b", Error: "corrective action b not found"},
		}, errors.New("corrective action b not found"))

	w := doRequest(newTestRouter(api), http.MethodPost, "/actions/status", `{"ids":["a","b"],"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["outcomes"], 2)
	assert.Equal(t, "corrective action b not found", body["error"])

	w = doRequest(newTestRouter(api), http.MethodPost, "/actions/status", `{"ids":[],"status":"in_progress"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListActions_Query(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("ListActions", mock.Anything, models.ActionFilter{
		AuditPlanID: "plan-1",
		Status:      models.ActionStatusOverdue,
		AssignedTo:  "emp-1",
		SortBy:      "priority",
		SortDesc:    true,
		Page:        2,
		Limit:       10,
	}).Return(&services.ActionViewPage{Items: []services.ActionView{}, Total: 11, Page: 2, Limit: 10}, nil)

	r := newTestRouter(api)
	w := doRequest(r, http.MethodGet, "/plans/plan-1/actions?status=overdue&assignee=emp-1&sort=priority&order=desc&page=2&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 11, decode(t, w)["total"])

	w = doRequest(r, http.MethodGet, "/plans/plan-1/actions?sort=name", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateActions(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("BulkGenerate", mock.Anything, "plan-1").
		Return(&models.GenerateResult{Outcomes: []models.GenerateOutcome{}, Message: services.NothingToGenerate}, nil).Once()
	api.On("BulkGenerate", mock.Anything, "plan-2").
		Return(nil, &engine.NotFoundError{Kind: "audit plan", ID: "plan-2"}).Once()

	r := newTestRouter(api)
	w := doRequest(r, http.MethodPost, "/plans/plan-1/actions/generate", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.NothingToGenerate, decode(t, w)["message"])

	w = doRequest(r, http.MethodPost, "/plans/plan-2/actions/generate", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendReminders(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("SendReminders", mock.Anything, "plan-1").Return(&models.ReminderResult{
		TotalSent:   1,
		TotalFailed: 1,
		Outcomes: []models.ReminderOutcomeItem{
			{AssigneeID: "emp-a", ActionIDs: []string{"a1"}, Outcome: models.ReminderSent},
			{AssigneeID: "emp-b", ActionIDs: []string{"a3"}, Outcome: models.ReminderFailed, Error: "smtp down"},
		},
	}, errors.New("smtp down"))

	w := doRequest(newTestRouter(api), http.MethodPost, "/plans/plan-1/reminders", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["result"].(map[string]any)["total_failed"])
	assert.Equal(t, "smtp down", body["error"])
}

func TestSearchActions_Disabled(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("SearchActions", mock.Anything, "plan-1", "projector").
		Return(nil, &engine.DependencyError{Op: "search corrective actions", Err: errors.New("search index is not configured")})

	w := doRequest(newTestRouter(api), http.MethodGet, "/actions/search?plan=plan-1&q=projector", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCandidates(t *testing.T) {
	api := new(MockAuditAPI)
	tiers := engine.Tiers{
		Exact:      []models.Candidate{{ID: "e1", Name: "Tanaka", Location: "Tokyo-3F"}},
		Partial:    []models.Candidate{},
		Department: []models.Candidate{},
		Fallback:   []models.Candidate{{ID: "e2", Name: "Sato"}},
	}
	api.On("Candidates", mock.Anything, "Tokyo-3F", models.RoleAuditor).Return(tiers, nil)

	r := newTestRouter(api)
	w := doRequest(r, http.MethodGet, "/assignments/candidates?location=Tokyo-3F&role=auditor", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["total"])
	assert.Len(t, body["best"], 1)

	w = doRequest(r, http.MethodGet, "/assignments/candidates?role=manager", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchivePlan(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("ArchivePlan", mock.Anything, "plan-1").
		Return(&services.ArchiveResult{Key: "reports/plan-1/x.json", Location: "s3://audit/reports/plan-1/x.json"}, nil)

	w := doRequest(newTestRouter(api), http.MethodPost, "/plans/plan-1/archive", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "s3://audit/reports/plan-1/x.json", decode(t, w)["report"].(map[string]any)["location"])
}

func TestDeleteAction(t *testing.T) {
	api := new(MockAuditAPI)
	api.On("DeleteAction", mock.Anything, "ca-1").Return(nil)
	api.On("DeleteAction", mock.Anything, "ca-2").Return(&engine.NotFoundError{Kind: "corrective action", ID: "ca-2"})

	r := newTestRouter(api)
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodDelete, "/actions/ca-1", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodDelete, "/actions/ca-2", "").Code)
}
