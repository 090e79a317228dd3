package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/announcement"
	"school-cms-api/internal/database"
	"school-cms-api/internal/extra"
	"school-cms-api/internal/post"
	"school-cms-api/internal/staff"
	"school-cms-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type stubFeed struct {
	rows  []activitylog.Row
	err   error
	limit int
}

func (f *stubFeed) Recent(_ context.Context, limit int) ([]activitylog.Row, error) {
	f.limit = limit
	return f.rows, f.err
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	day := 24 * time.Hour

	posts := []post.Post{
		{Title: "P1", Slug: "p1", Content: "x", Status: post.StatusPublished, PublishedAt: at(-day), Views: 10, CreatedAt: now.Add(-5 * day)},
		{Title: "P2", Slug: "p2", Content: "x", Status: post.StatusPublished, PublishedAt: at(-day), Views: 5, CreatedAt: now.Add(-4 * day)},
		{Title: "P3", Slug: "p3", Content: "x", Status: post.StatusDraft, CreatedAt: now.Add(-3 * day)},
		{Title: "P4", Slug: "p4", Content: "x", Status: post.StatusArchived, Views: 1, CreatedAt: now.Add(-2 * day)},
		{Title: "P5", Slug: "p5", Content: "x", Status: post.StatusDraft, CreatedAt: now.Add(-day)},
		{Title: "P6", Slug: "p6", Content: "x", Status: post.StatusDraft, CreatedAt: now},
	}
	require.NoError(t, db.Create(&posts).Error)

	anns := []announcement.Announcement{
		{Title: "Active", Slug: "a1", Content: "x", Priority: "normal", PublishedAt: at(-day), IsPinned: true},
		{Title: "Expired", Slug: "a2", Content: "x", Priority: "normal", PublishedAt: at(-3 * day), ExpiresAt: at(-day), IsPinned: true},
		{Title: "Scheduled", Slug: "a3", Content: "x", Priority: "normal", PublishedAt: at(day)},
		{Title: "Draft", Slug: "a4", Content: "x", Priority: "normal"},
	}
	require.NoError(t, db.Create(&anns).Error)

	people := []staff.Staff{
		{Name: "A", Slug: "a", Position: "Teacher", IsActive: true},
		{Name: "B", Slug: "b", Position: "Teacher", IsActive: false},
	}
	require.NoError(t, db.Create(&people).Error)

	extras := []extra.Extra{
		{Name: "Choir", Slug: "choir", MembersCount: 20, IsActive: true},
		{Name: "Chess", Slug: "chess", MembersCount: 7, IsActive: false},
	}
	require.NoError(t, db.Create(&extras).Error)
}

func TestDashboardService_Overview(t *testing.T) {
	db := testutil.NewDB(t, database.Models()...)
	seed(t, db)
	feed := &stubFeed{rows: []activitylog.Row{{ActivityLog: activitylog.ActivityLog{Message: "hello"}, UserName: "Ana"}}}

	svc := NewDashboardService(db, feed)
	svc.Clock = func() time.Time { return now }

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), o.Counts.Posts)
	assert.Equal(t, int64(4), o.Counts.Announcements)
	assert.Equal(t, int64(2), o.Counts.Staff)
	assert.Equal(t, int64(2), o.Counts.Extras)
	assert.Equal(t, int64(0), o.Counts.Galleries)

	assert.Equal(t, AnnouncementStates{Total: 4, Active: 1, Scheduled: 2, Expired: 1, Pinned: 1}, o.Announcements)
	assert.Equal(t, PostStatuses{Draft: 3, Published: 2, Archived: 1, TotalViews: 16}, o.Posts)
	assert.Equal(t, int64(1), o.ActiveStaff)
	assert.Equal(t, int64(20), o.ExtraMembers)

	require.Len(t, o.LatestPosts, 5)
	assert.Equal(t, "P6", o.LatestPosts[0].Title)
	assert.Equal(t, "P2", o.LatestPosts[4].Title)

	assert.Equal(t, recentActivityLimit, feed.limit)
	require.Len(t, o.RecentActivity, 1)
	assert.Equal(t, "Ana", o.RecentActivity[0].UserName)
	assert.Equal(t, now, o.GeneratedAt)
}

func TestDashboardService_Overview_FeedError(t *testing.T) {
	db := testutil.NewDB(t, database.Models()...)
	svc := NewDashboardService(db, &stubFeed{err: errors.New("boom")})

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}

func TestDashboardService_Overview_Empty(t *testing.T) {
	db := testutil.NewDB(t, database.Models()...)
	svc := NewDashboardService(db, nil)

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Empty(t, o.LatestPosts)
	assert.NotNil(t, o.RecentActivity)
	assert.Zero(t, o.Posts.TotalViews)
}
