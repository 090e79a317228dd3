package staff

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc StaffServiceAPI, ls activitylog.Recorder) {
	sc := &StaffController{Service: svc, LS: ls}

	publicGroup := r.Group("/api/v1/staff")
	{
		publicGroup.GET("", sc.Index)
		publicGroup.GET("/:slug", sc.Show)
	}

	adminGroup := r.Group("/api/admin/v1/staff")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", sc.AdminIndex)
		adminGroup.POST("", sc.Store)
		adminGroup.POST("/import", sc.Import)
		adminGroup.GET("/import/template", sc.ImportTemplate)
		adminGroup.GET("/:id", sc.AdminShow)
		adminGroup.PUT("/:id", sc.Update)
		adminGroup.DELETE("/:id", sc.Destroy)
	}
}
