package category

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc CategoryServiceAPI, ls activitylog.Recorder) {
	cc := &CategoryController{Service: svc, LS: ls}

	publicGroup := r.Group("/api/v1/categories")
	{
		publicGroup.GET("", cc.Index)
		publicGroup.GET("/:slug", cc.Show)
	}

	adminGroup := r.Group("/api/admin/v1/categories")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", cc.Index)
		adminGroup.POST("", cc.Store)
		adminGroup.GET("/:id", cc.AdminShow)
		adminGroup.PUT("/:id", cc.Update)
		adminGroup.DELETE("/:id", cc.Destroy)
	}
}
