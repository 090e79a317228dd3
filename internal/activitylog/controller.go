package activitylog

import (
	"net/http"

	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	LogService LogServiceAPI
}

func (lc *LogController) Search(c *gin.Context) {
	var input SearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.normalizePaging()

	rows, aggs, total, totalPages, err := lc.LogService.Search(input)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        rows,
		"page":        input.Page,
		"page_size":   input.PageSize,
		"total":       total,
		"total_pages": totalPages,
		"aggregates":  aggs,
	})
}
