package category

import (
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

const subject = "category"

type CategoryController struct {
	Service CategoryServiceAPI
	LS      activitylog.Recorder
}

func (cc *CategoryController) Index(c *gin.Context) {
	listing, err := cc.Service.List(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (cc *CategoryController) Show(c *gin.Context) {
	cat, posts, err := cc.Service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*cat, posts)).Document())
}

func (cc *CategoryController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	cat, posts, err := cc.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*cat, posts)).Document())
}

func (cc *CategoryController) Store(c *gin.Context) {
	var in CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	cat, err := cc.Service.Create(c.Request.Context(), in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, cc.LS, subject, cat.ID, activitylog.ActionCreate,
		fmt.Sprintf("Category %q created", cat.Name), gin.H{"slug": cat.Slug, "type": cat.Type})

	c.JSON(http.StatusCreated, jsonapi.NewBuilder().One(Resource(*cat, 0)).Document())
}

func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	cat, err := cc.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, cc.LS, subject, cat.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Category %q updated", cat.Name), gin.H{"slug": cat.Slug})

	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*cat, 0)).Document())
}

func (cc *CategoryController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := cc.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, cc.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Category %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}
