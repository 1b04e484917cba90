package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/Itish41/asset-audit/models"
	"github.com/gin-gonic/gin"
)

type assetStatusRequest struct {
	Status         string  `json:"status" binding:"required"`
	Location       *string `json:"location"`
	Notes          *string `json:"notes" binding:"omitempty,max=2000"`
	ReassignedUser *string `json:"reassigned_user"`
}

type resolveRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateAssetStatus handles PUT /assets/:id/status
func (c *AuditController) UpdateAssetStatus(ctx *gin.Context) {
	var req assetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.respondBindError(ctx, err)
		return
	}
	status, err := parseAssetStatus(req.Status)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	asset, err := c.service.UpdateAssetStatus(ctx.Request.Context(), ctx.Param("id"), models.AssetStatusUpdate{
		Status:         status,
		Location:       req.Location,
		Notes:          req.Notes,
		ReassignedUser: req.ReassignedUser,
	})
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Asset status updated successfully", "asset": newAssetResponse(*asset)})
}

// ResolveAsset handles POST /assets/:id/resolve. The body is optional.
func (c *AuditController) ResolveAsset(ctx *gin.Context) {
	var req resolveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.respondBindError(ctx, err)
		return
	}
	asset, err := c.service.ResolveAsset(ctx.Request.Context(), ctx.Param("id"), req.Notes)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Asset resolved successfully", "asset": newAssetResponse(*asset)})
}
