package dashboard

import (
	"context"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/announcement"
	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/extra"
	"school-cms-api/internal/facility"
	"school-cms-api/internal/gallery"
	"school-cms-api/internal/post"
	"school-cms-api/internal/repository"
	"school-cms-api/internal/slider"
	"school-cms-api/internal/staff"

	"gorm.io/gorm"
)

const (
	recentActivityLimit = 10
	latestPostsLimit    = 5
)

// ActivityFeed is the part of the activity log the dashboard reads.
type ActivityFeed interface {
	Recent(ctx context.Context, limit int) ([]activitylog.Row, error)
}

type DashboardServiceAPI interface {
	Overview(ctx context.Context) (*Overview, error)
}

var _ DashboardServiceAPI = (*DashboardService)(nil)

type DashboardService struct {
	DB    *gorm.DB
	Feed  ActivityFeed
	Clock repository.Clock
}

func NewDashboardService(db *gorm.DB, feed ActivityFeed) *DashboardService {
	return &DashboardService{DB: db, Feed: feed}
}

func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	now := s.Clock.Now().UTC()
	db := s.DB.WithContext(ctx)
	out := &Overview{GeneratedAt: now, RecentActivity: []activitylog.Row{}, LatestPosts: []LatestPost{}}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&post.Post{}, &out.Counts.Posts},
		{&announcement.Announcement{}, &out.Counts.Announcements},
		{&staff.Staff{}, &out.Counts.Staff},
		{&facility.Facility{}, &out.Counts.Facilities},
		{&extra.Extra{}, &out.Counts.Extras},
		{&gallery.Gallery{}, &out.Counts.Galleries},
		{&category.Category{}, &out.Counts.Categories},
		{&slider.Slider{}, &out.Counts.Sliders},
		{&auth.User{}, &out.Counts.Users},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var anns []announcement.Announcement
	if err := db.Select("id", "is_pinned", "published_at", "expires_at").Find(&anns).Error; err != nil {
		return nil, err
	}
	sum := announcement.Summarize(anns, now)
	out.Announcements = AnnouncementStates{
		Total:     sum.Total,
		Active:    sum.Active,
		Scheduled: sum.Scheduled,
		Expired:   sum.Expired,
		Pinned:    sum.Pinned,
	}

	var statuses []struct {
		Status string
		N      int64
		Views  int64
	}
	if err := db.Model(&post.Post{}).
		Select("status, COUNT(*) AS n, COALESCE(SUM(views), 0) AS views").
		Group("status").
		Scan(&statuses).Error; err != nil {
		return nil, err
	}
	for _, st := range statuses {
		switch st.Status {
		case post.StatusDraft:
			out.Posts.Draft = st.N
		case post.StatusPublished:
			out.Posts.Published = st.N
		case post.StatusArchived:
			out.Posts.Archived = st.N
		}
		out.Posts.TotalViews += st.Views
	}

	if err := db.Model(&staff.Staff{}).Scopes(staff.Active).Count(&out.ActiveStaff).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&extra.Extra{}).Scopes(extra.Active).
		Select("COALESCE(SUM(members_count), 0)").
		Scan(&out.ExtraMembers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&post.Post{}).
		Select("id", "title", "slug", "status", "views", "published_at", "created_at").
		Order("created_at DESC").
		Order("id DESC").
		Limit(latestPostsLimit).
		Scan(&out.LatestPosts).Error; err != nil {
		return nil, err
	}

	if s.Feed != nil {
		rows, err := s.Feed.Recent(ctx, recentActivityLimit)
		if err != nil {
			return nil, err
		}
		out.RecentActivity = rows
	}
	return out, nil
}
