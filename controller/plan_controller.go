package controller

import (
	"net/http"

	"github.com/Itish41/asset-audit/models"
	"github.com/gin-gonic/gin"
)

// ListAssets handles GET /plans/:id/assets
func (c *AuditController) ListAssets(ctx *gin.Context) {
	assets, err := c.service.ListAssets(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	items := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		items = append(items, newAssetResponse(a))
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Assets retrieved successfully", "items": items})
}

// Discrepancies handles GET /plans/:id/discrepancies
func (c *AuditController) Discrepancies(ctx *gin.Context) {
	found, err := c.service.Discrepancies(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Discrepancies detected successfully", "items": found})
}

// GenerateActions handles POST /plans/:id/actions/generate. Per-item failures
// come back alongside the outcomes with status 200.
func (c *AuditController) GenerateActions(ctx *gin.Context) {
	result, err := c.service.BulkGenerate(ctx.Request.Context(), ctx.Param("id"))
	if result == nil {
		c.respondError(ctx, err)
		return
	}
	body := gin.H{"result": result, "message": "Corrective actions generated successfully"}
	if result.Message != "" {
		body["message"] = result.Message
	}
	if err != nil {
		body["error"] = err.Error()
	}
	ctx.JSON(http.StatusOK, body)
}

// SendReminders handles POST /plans/:id/reminders
func (c *AuditController) SendReminders(ctx *gin.Context) {
	result, err := c.service.SendReminders(ctx.Request.Context(), ctx.Param("id"))
	if result == nil {
		c.respondError(ctx, err)
		return
	}
	body := gin.H{"result": result, "message": "Reminders processed"}
	if err != nil {
		body["error"] = err.Error()
	}
	ctx.JSON(http.StatusOK, body)
}

// ReminderHistory handles GET /plans/:id/reminders
func (c *AuditController) ReminderHistory(ctx *gin.Context) {
	logs, err := c.service.ReminderHistory(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	if logs == nil {
		logs = []models.ReminderLog{}
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Reminder history retrieved successfully", "items": logs})
}

// ArchivePlan handles POST /plans/:id/archive
func (c *AuditController) ArchivePlan(ctx *gin.Context) {
	result, err := c.service.ArchivePlan(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Plan report archived successfully", "report": result})
}
