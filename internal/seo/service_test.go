package seo

import (
	"context"
	"strings"
	"testing"
	"time"

	"school-cms-api/internal/announcement"
	"school-cms-api/internal/database"
	"school-cms-api/internal/extra"
	"school-cms-api/internal/facility"
	"school-cms-api/internal/gallery"
	"school-cms-api/internal/post"
	"school-cms-api/internal/staff"
	"school-cms-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)

type mapSettings map[string]string

func (m mapSettings) String(_ context.Context, key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

func newService(t *testing.T, settings mapSettings) (*SEOService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, database.Models()...)
	svc := NewSEOService(db, settings, "https://smapelita.sch.id")
	svc.Clock = func() time.Time { return fixedNow }
	return svc, db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	past := fixedNow.Add(-48 * time.Hour)
	future := fixedNow.Add(48 * time.Hour)
	edited := time.Date(2026, 5, 18, 9, 30, 0, 0, time.UTC)

	require.NoError(t, db.Create(&post.Post{Title: "Open day", Slug: "open-day", Content: "x",
		Status: post.StatusPublished, PublishedAt: &past, UpdatedAt: edited}).Error)
	require.NoError(t, db.Create(&post.Post{Title: "Draft", Slug: "draft-post", Content: "x",
		Status: "draft"}).Error)
	require.NoError(t, db.Create(&post.Post{Title: "Later", Slug: "later", Content: "x",
		Status: post.StatusPublished, PublishedAt: &future}).Error)

	require.NoError(t, db.Create(&announcement.Announcement{Title: "Exam week", Slug: "exam-week", Content: "x",
		Priority: announcement.PriorityNormal, PublishedAt: &past, ExpiresAt: &future}).Error)
	require.NoError(t, db.Create(&announcement.Announcement{Title: "Old", Slug: "old-notice", Content: "x",
		Priority: announcement.PriorityNormal, PublishedAt: &past, ExpiresAt: &past}).Error)

	require.NoError(t, db.Create(&gallery.Gallery{Title: "Sports day", Slug: "sports-day", IsPublished: true}).Error)
	require.NoError(t, db.Create(&gallery.Gallery{Title: "Hidden", Slug: "hidden-gallery", IsPublished: false}).Error)

	require.NoError(t, db.Create(&staff.Staff{Name: "Sari", Slug: "sari", Position: "Teacher", IsActive: true}).Error)
	require.NoError(t, db.Create(&staff.Staff{Name: "Retired", Slug: "retired", Position: "Teacher", IsActive: false}).Error)

	require.NoError(t, db.Create(&facility.Facility{Name: "Lab", Slug: "lab", Condition: "good", IsAvailable: false}).Error)

	require.NoError(t, db.Create(&extra.Extra{Name: "Scouts", Slug: "scouts", IsActive: true}).Error)
	require.NoError(t, db.Create(&extra.Extra{Name: "Chess", Slug: "chess", IsActive: false}).Error)
}

func locs(set *URLSet) []string {
	out := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		out = append(out, u.Loc)
	}
	return out
}

func TestSitemap_OnlyPublicItems(t *testing.T) {
	svc, db := newService(t, mapSettings{})
	seed(t, db)

	set, err := svc.Sitemap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sitemapNS, set.XMLNS)

	got := locs(set)
	assert.Equal(t, "https://smapelita.sch.id/", got[0])
	assert.Len(t, got, len(staticPages)+6)

	for _, want := range []string{
		"https://smapelita.sch.id/posts/open-day",
		"https://smapelita.sch.id/announcements/exam-week",
		"https://smapelita.sch.id/galleries/sports-day",
		"https://smapelita.sch.id/staff/sari",
		"https://smapelita.sch.id/facilities/lab",
		"https://smapelita.sch.id/extracurriculars/scouts",
	} {
		assert.Contains(t, got, want)
	}
	for _, hidden := range []string{"draft-post", "later", "old-notice", "hidden-gallery", "retired", "chess"} {
		for _, loc := range got {
			assert.False(t, strings.HasSuffix(loc, "/"+hidden), "%s should not be listed", hidden)
		}
	}
}

func TestSitemap_LastModFromUpdatedAt(t *testing.T) {
	svc, db := newService(t, mapSettings{})
	seed(t, db)

	set, err := svc.Sitemap(context.Background())
	require.NoError(t, err)

	for _, u := range set.URLs {
		if strings.HasSuffix(u.Loc, "/posts/open-day") {
			assert.Equal(t, "2026-05-18", u.LastMod)
			assert.Equal(t, "weekly", u.ChangeFreq)
			return
		}
	}
	t.Fatal("post missing from sitemap")
}

func TestRobots(t *testing.T) {
	svc, _ := newService(t, mapSettings{})

	robots := svc.Robots()
	assert.Contains(t, robots, "Disallow: /admin\n")
	assert.Contains(t, robots, "Sitemap: https://smapelita.sch.id/sitemap.xml")
}

func TestManifest_FromSettings(t *testing.T) {
	svc, _ := newService(t, mapSettings{
		"site_name":   "SMA Pelita",
		"theme_color": "#0f766e",
		"logo_url":    "https://cdn.example/logo.png",
	})

	m := svc.Manifest(context.Background())
	assert.Equal(t, "SMA Pelita", m.Name)
	assert.Equal(t, "SMA Pelita", m.ShortName)
	assert.Equal(t, "#0f766e", m.ThemeColor)
	assert.Equal(t, "#ffffff", m.BackgroundColor)
	assert.Len(t, m.Icons, 2)
}

func TestManifest_Defaults(t *testing.T) {
	svc, _ := newService(t, mapSettings{})

	m := svc.Manifest(context.Background())
	assert.Equal(t, "School Website", m.Name)
	assert.Equal(t, "standalone", m.Display)
	assert.Empty(t, m.Icons)
}
