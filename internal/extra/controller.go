package extra

import (
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

const subject = "extra"

type ExtraController struct {
	Service ExtraServiceAPI
	LS      activitylog.Recorder
}

func (ec *ExtraController) Index(c *gin.Context) {
	listing, err := ec.Service.ListPublic(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (ec *ExtraController) Show(c *gin.Context) {
	e, err := ec.Service.Show(c.Request.Context(), c.Param("slug"), jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*e))
}

func (ec *ExtraController) AdminIndex(c *gin.Context) {
	listing, err := ec.Service.List(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (ec *ExtraController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	e, err := ec.Service.GetByID(c.Request.Context(), id, jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*e))
}

func (ec *ExtraController) Store(c *gin.Context) {
	var in ExtraInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	e, err := ec.Service.Create(c.Request.Context(), in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ec.LS, subject, e.ID, activitylog.ActionCreate,
		fmt.Sprintf("Extracurricular %q created", e.Name), gin.H{"slug": e.Slug, "category": e.Category})

	c.JSON(http.StatusCreated, Document(*e))
}

func (ec *ExtraController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in ExtraInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	e, err := ec.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ec.LS, subject, e.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Extracurricular %q updated", e.Name), gin.H{"slug": e.Slug})

	c.JSON(http.StatusOK, Document(*e))
}

func (ec *ExtraController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := ec.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ec.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Extracurricular %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}
