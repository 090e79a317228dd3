package dashboard

import (
	"time"

	"school-cms-api/internal/activitylog"
)

type Counts struct {
	Posts         int64 `json:"posts"`
	Announcements int64 `json:"announcements"`
	Staff         int64 `json:"staff"`
	Facilities    int64 `json:"facilities"`
	Extras        int64 `json:"extras"`
	Galleries     int64 `json:"galleries"`
	Categories    int64 `json:"categories"`
	Sliders       int64 `json:"sliders"`
	Users         int64 `json:"users"`
}

type AnnouncementStates struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Scheduled int `json:"scheduled"`
	Expired   int `json:"expired"`
	Pinned    int `json:"pinned"`
}

type PostStatuses struct {
	Draft      int64 `json:"draft"`
	Published  int64 `json:"published"`
	Archived   int64 `json:"archived"`
	TotalViews int64 `json:"total_views"`
}

type LatestPost struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Views       int64      `json:"views"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Overview struct {
	Counts         Counts             `json:"counts"`
	Announcements  AnnouncementStates `json:"announcements"`
	Posts          PostStatuses       `json:"posts"`
	ActiveStaff    int64              `json:"active_staff"`
	ExtraMembers   int64              `json:"extra_members"`
	RecentActivity []activitylog.Row  `json:"recent_activity"`
	LatestPosts    []LatestPost       `json:"latest_posts"`
	GeneratedAt    time.Time          `json:"generated_at"`
}
