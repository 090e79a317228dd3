package settings

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

const subject = "settings"

type SettingsController struct {
	Service SettingsServiceAPI
	LS      activitylog.Recorder
}

// Show serves GET /settings?last_modified=...
//
// last_modified is the updated_at the client cached, RFC3339 or unix milliseconds. When
// nothing changed since then the body only carries not_modified. An If-None-Match header
// matching the checksum gets a bare 304.
func (sc *SettingsController) Show(c *gin.Context) {
	clientLM, err := parseOptionalTime(c.Query("last_modified"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_modified (use RFC3339 or unix ms)"})
		return
	}

	snap, err := sc.Service.Snapshot(c.Request.Context())
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	etag := `"` + snap.Checksum + `"`
	c.Header("ETag", etag)
	if !snap.UpdatedAt.IsZero() {
		c.Header("Last-Modified", snap.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	meta := gin.H{"updated_at": snap.UpdatedAt, "checksum": snap.Checksum}
	if clientLM != nil && !snap.UpdatedAt.After(*clientLM) {
		meta["not_modified"] = true
		c.JSON(http.StatusOK, gin.H{"meta": meta})
		return
	}
	meta["not_modified"] = false
	c.JSON(http.StatusOK, gin.H{"data": snap.Groups, "meta": meta})
}

func (sc *SettingsController) AdminIndex(c *gin.Context) {
	rows, err := sc.Service.List(c.Request.Context(), c.Query("group"))
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "meta": gin.H{"total": len(rows)}})
}

// Update upserts a {key: value} body. ?group= sets the group of keys that do not exist yet.
func (sc *SettingsController) Update(c *gin.Context) {
	var values map[string]json.RawMessage
	if err := c.ShouldBindJSON(&values); err != nil {
		jsonapi.BindError(c, err)
		return
	}

	rows, err := sc.Service.Update(c.Request.Context(), c.Query("group"), values)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	activitylog.Record(c, sc.LS, subject, 0, activitylog.ActionUpdate,
		"Settings updated: "+strings.Join(keys, ", "), gin.H{"keys": keys})

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved", "data": rows})
}

func parseOptionalTime(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return &t, nil
	}

	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		t := time.UnixMilli(ms)
		return &t, nil
	}

	return nil, strconv.ErrSyntax
}
