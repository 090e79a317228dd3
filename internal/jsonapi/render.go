package jsonapi

import (
	"net/http"
	"strconv"

	"school-cms-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RenderError answers with the status the error maps to. Server errors are logged and
// their detail is kept out of the response body.
func RenderError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func Render(c *gin.Context, status int, doc Document) {
	c.JSON(status, doc)
}

// RequestURL rebuilds the absolute URL of the current request for pagination links.
func RequestURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}

// ParamID reads a positive numeric path parameter, answering 400 itself when it is not one.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// BindError answers 400 for a body that failed to bind or validate.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
