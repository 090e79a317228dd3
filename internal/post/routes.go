package post

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc PostServiceAPI, ls activitylog.Recorder) {
	pc := &PostController{Service: svc, LS: ls}

	publicGroup := r.Group("/api/v1/posts")
	{
		publicGroup.GET("", pc.Index)
		publicGroup.GET("/:slug", pc.Show)
	}

	adminGroup := r.Group("/api/admin/v1/posts")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", pc.AdminIndex)
		adminGroup.POST("", pc.Store)
		adminGroup.GET("/:id", pc.AdminShow)
		adminGroup.PUT("/:id", pc.Update)
		adminGroup.DELETE("/:id", pc.Destroy)
		adminGroup.POST("/:id/excerpt", pc.GenerateExcerpt)
	}
}
