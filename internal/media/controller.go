package media

import (
	"errors"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

const subject = "media"

type MediaController struct {
	Service MediaServiceAPI
	LS      activitylog.Recorder
}

func (mc *MediaController) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": ErrTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file"})
		return
	}
	defer f.Close()

	up, err := mc.Service.Upload(c.Request.Context(), c.PostForm("folder"), fh.Filename,
		fh.Header.Get("Content-Type"), fh.Size, f)
	switch {
	case errors.Is(err, ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrUnsupportedType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	case err != nil:
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, mc.LS, subject, 0, "UPLOAD", "Uploaded "+up.Path,
		gin.H{"path": up.Path, "size": up.Size, "content_type": up.ContentType})

	c.JSON(http.StatusCreated, gin.H{"data": up})
}

func (mc *MediaController) Index(c *gin.Context) {
	items, err := mc.Service.List(c.Request.Context(), c.Query("folder"))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "meta": gin.H{"total": len(items)}})
}

// Destroy removes ?path= (an object path or URL).
func (mc *MediaController) Destroy(c *gin.Context) {
	target := c.Query("path")
	if err := mc.Service.Delete(c.Request.Context(), target); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, mc.LS, subject, 0, activitylog.ActionDelete, "Deleted "+target, gin.H{"path": target})

	c.Status(http.StatusNoContent)
}

func RegisterRoutes(r *gin.Engine, svc MediaServiceAPI, ls activitylog.Recorder) {
	mc := &MediaController{Service: svc, LS: ls}

	mediaGroup := r.Group("/api/admin/v1/media")
	mediaGroup.Use(middlewares.AuthMiddleware())
	{
		mediaGroup.GET("", mc.Index)
		mediaGroup.POST("", mc.Upload)
		mediaGroup.DELETE("", mc.Destroy)
	}
}
