package staff

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/sheet"

	"github.com/gin-gonic/gin"
)

const (
	subject = "staff"

	maxImportSize = 5 << 20
)

type StaffController struct {
	Service StaffServiceAPI
	LS      activitylog.Recorder
}

func (sc *StaffController) Index(c *gin.Context) {
	listing, err := sc.Service.ListPublic(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c), true))
}

func (sc *StaffController) Show(c *gin.Context) {
	m, err := sc.Service.Show(c.Request.Context(), c.Param("slug"))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*m, sc.Service.Now(), true)).Document())
}

func (sc *StaffController) AdminIndex(c *gin.Context) {
	listing, err := sc.Service.List(c.Request.Context(), jsonapi.ParseQuery(c))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDocument(listing, jsonapi.RequestURL(c), false))
}

func (sc *StaffController) AdminShow(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	m, err := sc.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*m, sc.Service.Now(), false)).Document())
}

func (sc *StaffController) Store(c *gin.Context) {
	var in StaffInput
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
		fmt.Sprintf("Staff member %q created", m.Name), gin.H{"slug": m.Slug, "position": m.Position})

	c.JSON(http.StatusCreated, jsonapi.NewBuilder().One(Resource(*m, sc.Service.Now(), false)).Document())
}

func (sc *StaffController) Update(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var in StaffInput
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
		fmt.Sprintf("Staff member %q updated", m.Name), gin.H{"slug": m.Slug})

	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*m, sc.Service.Now(), false)).Document())
}

func (sc *StaffController) Destroy(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	if err := sc.Service.Delete(c.Request.Context(), id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, sc.LS, subject, id, activitylog.ActionDelete,
		fmt.Sprintf("Staff member %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}

func (sc *StaffController) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is larger than 5 MiB"})
		return
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if format != sheet.FormatXLSX && format != sheet.FormatCSV {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only .xlsx and .csv files can be imported"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file"})
		return
	}
	defer f.Close()

	result, err := sc.Service.Import(c.Request.Context(), f, format)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, sc.LS, subject, 0, "IMPORT",
		fmt.Sprintf("Imported %d staff members from %s", result.Created, fh.Filename),
		gin.H{"created": result.Created, "skipped": result.Skipped})

	c.JSON(http.StatusOK, gin.H{"message": "Import finished", "result": result})
}

// ImportTemplate serves an empty workbook with the columns Import understands.
func (sc *StaffController) ImportTemplate(c *gin.Context) {
	contentType, ext, data, err := sheet.Write(c.DefaultQuery("format", sheet.FormatXLSX), "Staff", ImportColumns, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="staff-import-template.`+ext+`"`)
	c.Data(http.StatusOK, contentType, data)
}
