package announcement

import (
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

const subject = "announcement"

type AnnouncementController struct {
	Service AnnouncementServiceAPI
	LS      activitylog.Recorder
}

func (ac *AnnouncementController) Index(c *gin.Context) {
	listing, err := ac.Service.ListPublic(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (ac *AnnouncementController) Show(c *gin.Context) {
	a, err := ac.Service.Show(c.Request.Context(), c.Param("slug"), jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*a, ac.Service.Now()))
}

func (ac *AnnouncementController) AdminIndex(c *gin.Context) {
	listing, err := ac.Service.List(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c)))
}

func (ac *AnnouncementController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	a, err := ac.Service.GetByID(c.Request.Context(), id, jsonapi.ParseQuery(c).Include)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, Document(*a, ac.Service.Now()))
}

func (ac *AnnouncementController) Store(c *gin.Context) {
	var in AnnouncementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	authorID, _ := middlewares.CurrentUserID(c)
	a, err := ac.Service.Create(c.Request.Context(), authorID, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ac.LS, subject, a.ID, activitylog.ActionCreate,
		fmt.Sprintf("Announcement %q created", a.Title), gin.H{"slug": a.Slug, "priority": a.Priority})

	c.JSON(http.StatusCreated, Document(*a, ac.Service.Now()))
}

func (ac *AnnouncementController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in AnnouncementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	a, err := ac.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ac.LS, subject, a.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Announcement %q updated", a.Title), gin.H{"slug": a.Slug, "priority": a.Priority})

	c.JSON(http.StatusOK, Document(*a, ac.Service.Now()))
}

func (ac *AnnouncementController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := ac.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ac.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Announcement %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}
