package announcement

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc AnnouncementServiceAPI, ls activitylog.Recorder) {
	ac := &AnnouncementController{Service: svc, LS: ls}

	publicGroup := r.Group("/api/v1/announcements")
	{
		publicGroup.GET("", ac.Index)
		publicGroup.GET("/:slug", ac.Show)
	}

	adminGroup := r.Group("/api/admin/v1/announcements")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", ac.AdminIndex)
		adminGroup.POST("", ac.Store)
		adminGroup.GET("/:id", ac.AdminShow)
		adminGroup.PUT("/:id", ac.Update)
		adminGroup.DELETE("/:id", ac.Destroy)
	}
}
