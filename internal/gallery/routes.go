package gallery

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc GalleryServiceAPI, ls activitylog.Recorder) {
	gc := &GalleryController{Service: svc, LS: ls}

	publicGroup := r.Group("/api/v1/galleries")
	{
		publicGroup.GET("", gc.Index)
		publicGroup.GET("/:slug", gc.Show)
	}

	adminGroup := r.Group("/api/admin/v1/galleries")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", gc.AdminIndex)
		adminGroup.POST("", gc.Store)
		adminGroup.GET("/:id", gc.AdminShow)
		adminGroup.PUT("/:id", gc.Update)
		adminGroup.DELETE("/:id", gc.Destroy)
		adminGroup.POST("/:id/images", gc.AddImages)
		adminGroup.DELETE("/:id/images/:imageId", gc.RemoveImage)
	}
}
