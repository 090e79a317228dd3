package announcement

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/testutil"

	"github.com/gin-gonic/gin"
)

func setupRouter(svc AnnouncementServiceAPI, rec *testutil.Recorder) *gin.Engine {
	ac := &AnnouncementController{Service: svc, LS: rec}
	r := testutil.Router()
	r.GET("/announcements", ac.Index)
	r.GET("/announcements/:slug", ac.Show)
	r.GET("/admin/announcements", ac.AdminIndex)
	r.GET("/admin/announcements/:id", ac.AdminShow)
	r.POST("/admin/announcements", ac.Store)
	r.PUT("/admin/announcements/:id", ac.Update)
	r.DELETE("/admin/announcements/:id", ac.Destroy)
	return r
}

type listDoc struct {
	Data []struct {
		Attributes struct {
			Title     string `json:"title"`
			State     string `json:"state"`
			IsExpired bool   `json:"is_expired"`
			DaysLeft  *int   `json:"days_left"`
		} `json:"attributes"`
	} `json:"data"`
	Meta map[string]any `json:"meta"`
}

func TestAdminIndex_MetaPartitionsCollection(t *testing.T) {
	svc, db := newService(t)
	seedMix(t, db)

	w := testutil.Do(setupRouter(svc, &testutil.Recorder{}), http.MethodGet, "/admin/announcements?per_page=2", "", 1)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var doc listDoc
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(doc.Data) != 2 {
		t.Fatalf("expected one page of 2, got %d", len(doc.Data))
	}
	total := doc.Meta["total"].(float64)
	sum := doc.Meta["active"].(float64) + doc.Meta["expired"].(float64) + doc.Meta["scheduled"].(float64)
	if total != 5 || sum != total {
		t.Fatalf("partition mismatch: %+v", doc.Meta)
	}
	if doc.Meta["pinned"] != float64(1) {
		t.Fatalf("pinned=%v want 1", doc.Meta["pinned"])
	}
}

func TestIndex_PublicShowsOnlyActive(t *testing.T) {
	svc, db := newService(t)
	seedMix(t, db)

	w := testutil.Do(setupRouter(svc, &testutil.Recorder{}), http.MethodGet, "/announcements", "", 0)
	var doc listDoc
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(doc.Data) != 2 {
		t.Fatalf("expected 2 active, got %d", len(doc.Data))
	}
	for _, d := range doc.Data {
		if d.Attributes.State != StateActive || d.Attributes.IsExpired {
			t.Fatalf("unexpected item: %+v", d.Attributes)
		}
	}
	if doc.Data[1].Attributes.DaysLeft == nil || *doc.Data[1].Attributes.DaysLeft != 3 {
		t.Fatalf("days_left=%v want 3", doc.Data[1].Attributes.DaysLeft)
	}
}

func TestStore_InvalidWindow422(t *testing.T) {
	svc, _ := newService(t)
	rec := &testutil.Recorder{}
	r := setupRouter(svc, rec)

	body := `{"title":"Exam","content":"c","published_at":"2026-05-02T00:00:00Z","expires_at":"2026-05-01T00:00:00Z"}`
	w := testutil.Do(r, http.MethodPost, "/admin/announcements", body, 1)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", w.Code, w.Body.String())
	}
	if len(rec.Entries) != 0 {
		t.Fatalf("rejected create must not be logged")
	}

	body = `{"title":"Exam","content":"c","priority":"urgent"}`
	if w := testutil.Do(r, http.MethodPost, "/admin/announcements", body, 1); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestStore_CreatesAndLogs(t *testing.T) {
	svc, _ := newService(t)
	rec := &testutil.Recorder{}

	body := `{"title":"Exam Week","content":"c","published_at":"` + now.Add(-time.Hour).Format(time.RFC3339) + `"}`
	w := testutil.Do(setupRouter(svc, rec), http.MethodPost, "/admin/announcements", body, 1)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	entry, ok := rec.Last()
	if !ok || entry.Action != activitylog.ActionCreate || entry.Subject != subject {
		t.Fatalf("unexpected log: %+v", entry)
	}
}

func TestDestroy_NotFound(t *testing.T) {
	svc, _ := newService(t)
	w := testutil.Do(setupRouter(svc, &testutil.Recorder{}), http.MethodDelete, "/admin/announcements/9", "", 1)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
