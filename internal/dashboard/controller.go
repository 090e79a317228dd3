package dashboard

import (
	"net/http"

	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Service DashboardServiceAPI
}

func (dc *DashboardController) Show(c *gin.Context) {
	overview, err := dc.Service.Overview(c.Request.Context())
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": overview})
}

func RegisterRoutes(r *gin.Engine, svc DashboardServiceAPI) {
	dc := &DashboardController{Service: svc}

	r.GET("/api/admin/v1/dashboard", middlewares.AuthMiddleware(), dc.Show)
}
