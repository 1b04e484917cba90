package controller

import (
	"net/http"
	"strings"

	"github.com/Itish41/asset-audit/models"
	services "github.com/Itish41/asset-audit/service"
	"github.com/gin-gonic/gin"
)

type listActionsQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending in_progress completed overdue"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	Assignee   string `form:"assignee"`
	Unassigned bool   `form:"unassigned"`
	Sort       string `form:"sort" binding:"omitempty,oneof=due_date priority created_at"`
	Order      string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

type createActionRequest struct {
	AuditAssetID string `json:"audit_asset_id"`
	Issue        string `json:"issue" binding:"max=500"`
	Action       string `json:"action" binding:"max=500"`
	Notes        string `json:"notes" binding:"max=2000"`
	AssignedTo   string `json:"assigned_to"`
	Priority     string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	DueDate      string `json:"due_date"`
}

type editActionRequest struct {
	AuditAssetID *string `json:"audit_asset_id"`
	Issue        *string `json:"issue" binding:"omitempty,max=500"`
	Action       *string `json:"action" binding:"omitempty,max=500"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
	AssignedTo   *string `json:"assigned_to"`
	Priority     *string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	DueDate      *string `json:"due_date"`
	ClearDueDate bool    `json:"clear_due_date"`
}

type actionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1,dive,required"`
	Status string   `json:"status" binding:"required"`
}

// ListActions handles GET /plans/:id/actions
func (c *AuditController) ListActions(ctx *gin.Context) {
	var q listActionsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		c.respondBindError(ctx, err)
		return
	}
	page, err := c.service.ListActions(ctx.Request.Context(), models.ActionFilter{
		AuditPlanID: ctx.Param("id"),
		Status:      models.ActionStatus(q.Status),
		Priority:    models.Priority(q.Priority),
		AssignedTo:  q.Assignee,
		Unassigned:  q.Unassigned,
		SortBy:      q.Sort,
		SortDesc:    q.Order == "desc",
		Page:        q.Page,
		Limit:       q.Limit,
	})
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// CreateAction handles POST /actions
func (c *AuditController) CreateAction(ctx *gin.Context) {
	var req createActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.respondBindError(ctx, err)
		return
	}
	in := services.NewAction{
		AuditAssetID: req.AuditAssetID,
		Issue:        req.Issue,
		Action:       req.Action,
		Notes:        req.Notes,
		AssignedTo:   req.AssignedTo,
		Priority:     models.Priority(req.Priority),
	}
	if strings.TrimSpace(req.DueDate) != "" {
		due, err := parseDate("due_date", req.DueDate)
		if err != nil {
			c.respondError(ctx, err)
			return
		}
		in.DueDate = &due
	}

	action, err := c.service.CreateAction(ctx.Request.Context(), in)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Corrective action created successfully", "action": action})
}

// GetAction handles GET /actions/:id
func (c *AuditController) GetAction(ctx *gin.Context) {
	action, err := c.service.GetAction(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"action": action})
}

// EditAction handles PATCH /actions/:id
func (c *AuditController) EditAction(ctx *gin.Context) {
	var req editActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.respondBindError(ctx, err)
		return
	}
	patch := services.ActionPatch{
		AuditAssetID: req.AuditAssetID,
		Issue:        req.Issue,
		Action:       req.Action,
		Notes:        req.Notes,
		AssignedTo:   req.AssignedTo,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.DueDate != nil {
		due, err := parseDate("due_date", *req.DueDate)
		if err != nil {
			c.respondError(ctx, err)
			return
		}
		patch.DueDate = &due
	}

	action, err := c.service.EditAction(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Corrective action updated successfully", "action": action})
}

// UpdateActionStatus handles PUT /actions/:id/status
func (c *AuditController) UpdateActionStatus(ctx *gin.Context) {
	var req actionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.respondBindError(ctx, err)
		return
	}
	action, err := c.service.UpdateActionStatus(ctx.Request.Context(), ctx.Param("id"), models.ActionStatus(req.Status))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "action": action})
}

// BulkUpdateActionStatus handles POST /actions/status. Per-item failures are
// reported in outcomes; only request-level problems change the status code.
func (c *AuditController) BulkUpdateActionStatus(ctx *gin.Context) {
	var req bulkStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.respondBindError(ctx, err)
		return
	}
	outcomes, err := c.service.BulkUpdateActionStatus(ctx.Request.Context(), req.IDs, models.ActionStatus(req.Status))
	if outcomes == nil {
		c.respondError(ctx, err)
		return
	}
	body := gin.H{"message": "Statuses processed", "outcomes": outcomes}
	if err != nil {
		body["error"] = err.Error()
	}
	ctx.JSON(http.StatusOK, body)
}

// DeleteAction handles DELETE /actions/:id
func (c *AuditController) DeleteAction(ctx *gin.Context) {
	if err := c.service.DeleteAction(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Corrective action deleted successfully"})
}

// SearchActions handles GET /actions/search?q=&plan=
func (c *AuditController) SearchActions(ctx *gin.Context) {
	items, err := c.service.SearchActions(ctx.Request.Context(), ctx.Query("plan"), ctx.Query("q"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
