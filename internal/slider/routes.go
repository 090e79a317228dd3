package slider

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc SliderServiceAPI, ls activitylog.Recorder) {
	sc := &SliderController{Service: svc, LS: ls}

	r.GET("/api/v1/sliders", sc.Index)

	adminGroup := r.Group("/api/admin/v1/sliders")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", sc.AdminIndex)
		adminGroup.POST("", sc.Store)
		adminGroup.PUT("/reorder", sc.Reorder)
		adminGroup.GET("/:id", sc.AdminShow)
		adminGroup.PUT("/:id", sc.Update)
		adminGroup.DELETE("/:id", sc.Destroy)
	}
}
