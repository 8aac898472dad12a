package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the engine. Shared between the
// standalone server and the serverless entrypoint.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Volunteer Coordination API",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Coordination Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/volunteers", h.CreateVolunteer)
		api.GET("/volunteers", h.ListVolunteers)
		api.POST("/events", h.CreateEvent)
		api.GET("/events", h.ListEvents)

		api.POST("/matches/suggest", h.SuggestMatches)
		api.POST("/matches/score", h.ScorePair)
		api.POST("/matches/accept", h.AcceptMatch)
		api.POST("/matches/preview", h.PreviewMatches)

		api.POST("/reconcile", h.TriggerReconcile)
		api.GET("/history/:volunteerId", h.ListHistory)
		api.POST("/history/:id/feedback", h.SubmitFeedback)

		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}
}
