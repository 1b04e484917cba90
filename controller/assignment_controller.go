package controller

import (
	"net/http"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"github.com/gin-gonic/gin"
)

// Candidates handles GET /assignments/candidates?location=&role=
func (c *AuditController) Candidates(ctx *gin.Context) {
	role, err := models.ParseEmployeeRole(ctx.Query("role"))
	if err != nil {
		c.respondError(ctx, &engine.ValidationError{Field: "role", Reason: err.Error()})
		return
	}
	tiers, err := c.service.Candidates(ctx.Request.Context(), ctx.Query("location"), role)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tiers": tiers, "best": tiers.Best(), "total": tiers.Len()})
}
