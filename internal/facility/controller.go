package facility

import (
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

const subject = "facility"

type FacilityController struct {
	Service FacilityServiceAPI
	LS      activitylog.Recorder
}

func (fc *FacilityController) Index(c *gin.Context) {
	listing, err := fc.Service.List(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (fc *FacilityController) Show(c *gin.Context) {
	f, err := fc.Service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*f)).Document())
}

func (fc *FacilityController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	f, err := fc.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*f)).Document())
}

func (fc *FacilityController) Store(c *gin.Context) {
	var in FacilityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	f, err := fc.Service.Create(c.Request.Context(), in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, fc.LS, subject, f.ID, activitylog.ActionCreate,
		fmt.Sprintf("Facility %q created", f.Name), gin.H{"slug": f.Slug})

	c.JSON(http.StatusCreated, jsonapi.NewBuilder().One(Resource(*f)).Document())
}

func (fc *FacilityController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in FacilityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	f, err := fc.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, fc.LS, subject, f.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Facility %q updated", f.Name), gin.H{"slug": f.Slug, "condition": f.Condition})

	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*f)).Document())
}

func (fc *FacilityController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := fc.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, fc.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Facility %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}
