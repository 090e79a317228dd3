package extra

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc ExtraServiceAPI, ls activitylog.Recorder) {
	ec := &ExtraController{Service: svc, LS: ls}

	publicGroup := r.Group("/api/v1/extras")
	{
		publicGroup.GET("", ec.Index)
		publicGroup.GET("/:slug", ec.Show)
	}

	adminGroup := r.Group("/api/admin/v1/extras")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", ec.AdminIndex)
		adminGroup.POST("", ec.Store)
		adminGroup.GET("/:id", ec.AdminShow)
		adminGroup.PUT("/:id", ec.Update)
		adminGroup.DELETE("/:id", ec.Destroy)
	}
}
