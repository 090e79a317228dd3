package slider

import (
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

const subject = "slider"

type SliderController struct {
	Service SliderServiceAPI
	LS      activitylog.Recorder
}

func (sc *SliderController) Index(c *gin.Context) {
	items, err := sc.Service.ListActive(c.Request.Context())
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(items))
}

func (sc *SliderController) AdminIndex(c *gin.Context) {
	items, err := sc.Service.List(c.Request.Context())
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(items))
}

func (sc *SliderController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	m, err := sc.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*m)).Document())
}

func (sc *SliderController) Store(c *gin.Context) {
	var in SliderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	m, err := sc.Service.Create(c.Request.Context(), in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, sc.LS, subject, m.ID, activitylog.ActionCreate,
		fmt.Sprintf("Slider %q created", m.Title), gin.H{"sort_order": m.SortOrder})

	c.JSON(http.StatusCreated, jsonapi.NewBuilder().One(Resource(*m)).Document())
}

func (sc *SliderController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in SliderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	m, err := sc.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, sc.LS, subject, m.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Slider %q updated", m.Title), nil)

	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*m)).Document())
}

func (sc *SliderController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := sc.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, sc.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Slider %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}

func (sc *SliderController) Reorder(c *gin.Context) {
	var in ReorderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	items, err := sc.Service.Reorder(c.Request.Context(), in.IDs)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, sc.LS, subject, 0, "REORDER",
		fmt.Sprintf("%d sliders reordered", len(in.IDs)), gin.H{"ids": in.IDs})

	c.JSON(http.StatusOK, CollectionDocument(items))
}
