// Package testutil holds the sqlite and gin scaffolding shared by the content package tests.
package testutil

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"school-cms-api/internal/activitylog"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with the given tables migrated.
func NewDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	return db
}

// ClosedDB returns a migrated database whose connection is already closed, so every query fails.
func ClosedDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	db := NewDB(t, models...)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	_ = sqlDB.Close()
	return db
}

// Recorder collects activity log entries written by controllers.
type Recorder struct {
	mu      sync.Mutex
	Entries []activitylog.ActivityLog
	Err     error
}

func (r *Recorder) Log(entry activitylog.ActivityLog, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, entry)
	return r.Err
}

func (r *Recorder) Last() (activitylog.ActivityLog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Entries) == 0 {
		return activitylog.ActivityLog{}, false
	}
	return r.Entries[len(r.Entries)-1], true
}

// Router returns a test engine that trusts an X-UserID header in place of a JWT.
func Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-UserID"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.Set("userID", f)
			}
		}
		c.Next()
	})
	return r
}

// Do sends body as JSON (when non-empty) and returns the recorded response.
func Do(r http.Handler, method, path, body string, userID uint) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("X-UserID", strconv.FormatUint(uint64(userID), 10))
	}
	r.ServeHTTP(w, req)
	return w
}

func Ptr[T any](v T) *T { return &v }

// Date parses a UTC YYYY-MM-DD or RFC3339 value, failing the test on error.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	layout := time.RFC3339
	if len(s) == len("2006-01-02") {
		layout = "2006-01-02"
	}
	v, err := time.Parse(layout, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v.UTC()
}
