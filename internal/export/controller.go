package export

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/middlewares"
	"school-cms-api/internal/sheet"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Service ExportServiceAPI
	LS      activitylog.Recorder
	Now     func() time.Time
}

func (ec *ExportController) now() time.Time {
	if ec.Now != nil {
		return ec.Now()
	}
	return time.Now()
}

// Download serves GET /export/:resource?format=xlsx|csv.
func (ec *ExportController) Download(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", sheet.FormatXLSX))
	if format != sheet.FormatXLSX && format != sheet.FormatCSV {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx or csv"})
		return
	}

	resource := c.Param("resource")
	table, err := ec.Service.Table(c.Request.Context(), resource)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	contentType, ext, data, err := sheet.Write(format, table.Name, table.Headers, table.Rows)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ec.LS, "export", 0, "EXPORT",
		fmt.Sprintf("Exported %d %s rows as %s", len(table.Rows), resource, ext),
		gin.H{"resource": resource, "format": ext, "rows": len(table.Rows)})

	filename := fmt.Sprintf("%s-%s.%s", resource, ec.now().Format("20060102"), ext)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func (ec *ExportController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"resources": ec.Service.Resources(),
		"formats":   []string{sheet.FormatXLSX, sheet.FormatCSV},
	})
}

func RegisterRoutes(r *gin.Engine, svc ExportServiceAPI, ls activitylog.Recorder) {
	ec := &ExportController{Service: svc, LS: ls}

	exportGroup := r.Group("/api/admin/v1/export")
	exportGroup.Use(middlewares.AuthMiddleware())
	{
		exportGroup.GET("", ec.Index)
		exportGroup.GET("/:resource", ec.Download)
	}
}
