package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	services "github.com/Itish41/asset-audit/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuditAPI is the service surface the HTTP layer drives.
type AuditAPI interface {
	ListAssets(ctx context.Context, planID string) ([]models.AuditedAsset, error)
	UpdateAssetStatus(ctx context.Context, id string, update models.AssetStatusUpdate) (*models.AuditedAsset, error)
	ResolveAsset(ctx context.Context, id string, notes *string) (*models.AuditedAsset, error)

	Discrepancies(ctx context.Context, planID string) ([]engine.Discrepancy, error)
	BulkGenerate(ctx context.Context, planID string) (*models.GenerateResult, error)
	SendReminders(ctx context.Context, planID string) (*models.ReminderResult, error)
	ReminderHistory(ctx context.Context, planID string) ([]models.ReminderLog, error)
	ArchivePlan(ctx context.Context, planID string) (*services.ArchiveResult, error)

	ListActions(ctx context.Context, filter models.ActionFilter) (*services.ActionViewPage, error)
	CreateAction(ctx context.Context, in services.NewAction) (*models.CorrectiveAction, error)
	GetAction(ctx context.Context, id string) (*services.ActionView, error)
	EditAction(ctx context.Context, id string, patch services.ActionPatch) (*models.CorrectiveAction, error)
	UpdateActionStatus(ctx context.Context, id string, status models.ActionStatus) (*models.CorrectiveAction, error)
	BulkUpdateActionStatus(ctx context.Context, ids []string, status models.ActionStatus) ([]models.StatusOutcome, error)
	DeleteAction(ctx context.Context, id string) error
	SearchActions(ctx context.Context, planID, query string) ([]services.ActionView, error)

	Candidates(ctx context.Context, location string, role models.EmployeeRole) (engine.Tiers, error)
}

// AuditController manages HTTP requests for audit plans, assets and
// corrective actions.
type AuditController struct {
	service AuditAPI
	logger  *zap.Logger
}

func NewAuditController(service AuditAPI, logger *zap.Logger) *AuditController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditController{service: service, logger: logger.Named("http")}
}

// respondError maps typed service errors onto HTTP status codes.
func (c *AuditController) respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case engine.IsValidation(err):
		status = http.StatusBadRequest
	case engine.IsDuplicate(err):
		status = http.StatusConflict
	case engine.IsNotFound(err):
		status = http.StatusNotFound
	case engine.IsDependency(err):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		c.logger.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
	}
	_ = ctx.Error(err)
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// respondBindError reports malformed input, listing failing fields when the
// validator produced them.
func (c *AuditController) respondBindError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, gin.H{"field": fe.Field(), "rule": fe.Tag(), "param": fe.Param()})
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": fields})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}
