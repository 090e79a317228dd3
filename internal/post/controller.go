package post

import (
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

const subject = "post"

type PostController struct {
	Service PostServiceAPI
	LS      activitylog.Recorder
}

func (pc *PostController) Index(c *gin.Context) {
	listing, err := pc.Service.ListPublic(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (pc *PostController) Show(c *gin.Context) {
	p, err := pc.Service.Show(c.Request.Context(), c.Param("slug"), jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*p))
}

func (pc *PostController) AdminIndex(c *gin.Context) {
	listing, err := pc.Service.List(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (pc *PostController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	p, err := pc.Service.GetByID(c.Request.Context(), id, jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*p))
}

func (pc *PostController) Store(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	authorID, _ := middlewares.CurrentUserID(c)
	p, err := pc.Service.Create(c.Request.Context(), authorID, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, pc.LS, subject, p.ID, activitylog.ActionCreate,
		fmt.Sprintf("Post %q created", p.Title), gin.H{"slug": p.Slug, "status": p.Status})

	c.JSON(http.StatusCreated, Document(*p))
}

func (pc *PostController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	p, err := pc.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, pc.LS, subject, p.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Post %q updated", p.Title), gin.H{"slug": p.Slug, "status": p.Status})

	c.JSON(http.StatusOK, Document(*p))
}

func (pc *PostController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := pc.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, pc.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Post %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}

func (pc *PostController) GenerateExcerpt(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := pc.Service.GenerateExcerpt(c.Request.Context(), id)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, pc.LS, subject, p.ID, "GENERATE_EXCERPT",
		fmt.Sprintf("Excerpt generated for post %q", p.Title), nil)

	c.JSON(http.StatusOK, Document(*p))
}
