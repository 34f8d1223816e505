package routes

import (
	"net/http"
	"time"

	"fieldops/handlers"
	"fieldops/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes sets up the endpoints for the scheduling engine.
func RegisterScheduleRoutes(r *gin.Engine, sh *handlers.ScheduleHandler) {
	scheduleGroup := r.Group("/api/schedule")
	{
		scheduleGroup.POST("/generate", sh.GenerateScheduleHandler)
		scheduleGroup.GET("/availability", sh.GetAvailabilityHandler)
		scheduleGroup.GET("/proposals/:proposalID", sh.GetProposalHandler)
		scheduleGroup.PATCH("/proposals/:proposalID", sh.ModifyProposalHandler)
		scheduleGroup.POST("/proposals/:proposalID/approve", sh.ApproveProposalHandler)
		scheduleGroup.POST("/proposals/:proposalID/reject", sh.RejectProposalHandler)
	}
}

// RegisterWorkerRoutes registers worker-directory management endpoints.
func RegisterWorkerRoutes(r *gin.Engine, wh *handlers.WorkerHandler) {
	api := r.Group("/api/workers")
	{
		api.POST("", wh.CreateWorkerHandler)
		api.GET("", wh.ListWorkersHandler)
		api.PATCH("/:workerID/active", wh.SetWorkerActiveHandler)
	}
}

// RegisterAvailabilityRoutes registers blocked-time and time-off management.
func RegisterAvailabilityRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.POST("/blocked", ah.CreateBlockedTimeHandler)
		api.GET("/blocked", ah.ListBlockedTimeHandler)
		api.DELETE("/blocked/:blockID", ah.DeleteBlockedTimeHandler)

		api.POST("/time-off", ah.CreateTimeOffHandler)
		api.GET("/time-off", ah.ListTimeOffHandler)
		api.PATCH("/time-off/:requestID/status", ah.SetTimeOffStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sh *handlers.ScheduleHandler, wh *handlers.WorkerHandler, ah *handlers.AvailabilityHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScheduleRoutes(r, sh)
	RegisterWorkerRoutes(r, wh)
	RegisterAvailabilityRoutes(r, ah)
	RegisterHealthRoute(r)
}
