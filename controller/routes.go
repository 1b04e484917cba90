package controller

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the audit API on r. Handlers that fan out to the
// notifier, the index or many rows additionally pass through strict.
func (c *AuditController) RegisterRoutes(r gin.IRouter, strict ...gin.HandlerFunc) {
	heavy := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, strict...), h)
	}

	plans := r.Group("/plans/:id")
	plans.GET("/assets", c.ListAssets)
	plans.GET("/discrepancies", c.Discrepancies)
	plans.GET("/actions", c.ListActions)
	plans.POST("/actions/generate", heavy(c.GenerateActions)...)
	plans.GET("/reminders", c.ReminderHistory)
	plans.POST("/reminders", heavy(c.SendReminders)...)
	plans.POST("/archive", heavy(c.ArchivePlan)...)

	r.PUT("/assets/:id/status", c.UpdateAssetStatus)
	r.POST("/assets/:id/resolve", c.ResolveAsset)

	r.POST("/actions", c.CreateAction)
	r.GET("/actions/search", heavy(c.SearchActions)...)
	r.POST("/actions/status", heavy(c.BulkUpdateActionStatus)...)
	r.GET("/actions/:id", c.GetAction)
	r.PATCH("/actions/:id", c.EditAction)
	r.PUT("/actions/:id/status", c.UpdateActionStatus)
	r.DELETE("/actions/:id", c.DeleteAction)

	r.GET("/assignments/candidates", c.Candidates)
}
