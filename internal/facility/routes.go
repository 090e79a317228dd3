package facility

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc FacilityServiceAPI, ls activitylog.Recorder) {
	fc := &FacilityController{Service: svc, LS: ls}

	publicGroup := r.Group("/api/v1/facilities")
	{
		publicGroup.GET("", fc.Index)
		publicGroup.GET("/:slug", fc.Show)
	}

	adminGroup := r.Group("/api/admin/v1/facilities")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", fc.Index)
		adminGroup.POST("", fc.Store)
		adminGroup.GET("/:id", fc.AdminShow)
		adminGroup.PUT("/:id", fc.Update)
		adminGroup.DELETE("/:id", fc.Destroy)
	}
}
