package api

import (
	"rcm-workflow/internal/api/handler"
	"rcm-workflow/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.GET("/_healthz", handler.Health)

	// Stage catalog and processing
	r.GET("/api/v1/stages", handler.ListStages)
	r.POST("/api/v1/stages/*/uploads", handler.UploadFile)
	r.POST("/api/v1/stages/*/process", handler.ProcessStage)

	// Uploads: more specific routes first
	r.GET("/api/v1/uploads", handler.ListUploads)
	r.GET("/api/v1/uploads/*/submissions", handler.GetUploadSubmissions)
	r.POST("/api/v1/uploads/*/submit", handler.SubmitUpload)
	r.GET("/api/v1/uploads/*", handler.GetUpload)

	// Tracked claims (optional claim store)
	r.GET("/api/v1/claims/*", handler.GetClaim)

	// Admin rule management
	r.POST("/api/v1/admin/rules", handler.CreateRule)
	r.GET("/api/v1/admin/rules", handler.ListRules)
	r.GET("/api/v1/admin/rules/*", handler.GetRule)
	r.PUT("/api/v1/admin/rules/*", handler.UpdateRule)
	r.DELETE("/api/v1/admin/rules/*", handler.DeleteRule)
	r.GET("/api/v1/admin/unique-index", handler.GetUniqueIndex)

	// Debug
	r.GET("/api/v1/debug/events", handler.GetEvents)
}
