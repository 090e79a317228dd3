package settings

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc SettingsServiceAPI, ls activitylog.Recorder) {
	sc := &SettingsController{Service: svc, LS: ls}

	r.GET("/api/v1/settings", sc.Show)

	adminGroup := r.Group("/api/admin/v1/settings")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", sc.AdminIndex)
		adminGroup.PUT("", sc.Update)
	}
}
