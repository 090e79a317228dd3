package activitylog

import (
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, logService LogServiceAPI) {
	logController := &LogController{LogService: logService}

	adminGroup := r.Group("/api/admin/v1/activity-logs")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.POST("/search", logController.Search)
	}
}
