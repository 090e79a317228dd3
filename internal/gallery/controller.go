package gallery

import (
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

const subject = "gallery"

type GalleryController struct {
	Service GalleryServiceAPI
	LS      activitylog.Recorder
}

func (gc *GalleryController) Index(c *gin.Context) {
	listing, err := gc.Service.ListPublic(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (gc *GalleryController) Show(c *gin.Context) {
	g, err := gc.Service.Show(c.Request.Context(), c.Param("slug"), jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*g))
}

func (gc *GalleryController) AdminIndex(c *gin.Context) {
	listing, err := gc.Service.List(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (gc *GalleryController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	g, err := gc.Service.GetByID(c.Request.Context(), id, jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*g))
}

func (gc *GalleryController) Store(c *gin.Context) {
	var in GalleryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	g, err := gc.Service.Create(c.Request.Context(), in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, gc.LS, subject, g.ID, activitylog.ActionCreate,
		fmt.Sprintf("Gallery %q created", g.Title), gin.H{"slug": g.Slug, "published": g.IsPublished})

	c.JSON(http.StatusCreated, Document(*g))
}

func (gc *GalleryController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in GalleryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	g, err := gc.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, gc.LS, subject, g.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Gallery %q updated", g.Title), gin.H{"slug": g.Slug, "published": g.IsPublished})

	c.JSON(http.StatusOK, Document(*g))
}

func (gc *GalleryController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := gc.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, gc.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Gallery %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}

func (gc *GalleryController) AddImages(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in ImagesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	g, err := gc.Service.AddImages(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, gc.LS, subject, g.ID, activitylog.ActionUpdate,
		fmt.Sprintf("%d images added to gallery %q", len(in.Images), g.Title), gin.H{"added": len(in.Images)})

	c.JSON(http.StatusCreated, Document(*g))
}

func (gc *GalleryController) RemoveImage(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	imageID, ok := jsonapi.ParamID(c, "imageId")
	if !ok {
		return
	}

	if err := gc.Service.RemoveImage(c.Request.Context(), id, imageID); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, gc.LS, subject, id, activitylog.ActionUpdate,
		fmt.Sprintf("Image %d removed from gallery %d", imageID, id), gin.H{"image_id": imageID})

	c.Status(http.StatusNoContent)
}
