package announcement

import (
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/jsonapi"

	"gorm.io/gorm"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

const (
	StateActive    = "active"
	StateExpired   = "expired"
	StateScheduled = "scheduled"
)

type Announcement struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Title       string             `gorm:"size:200;not null" json:"title"`
	Slug        string             `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Content     string             `gorm:"type:text;not null" json:"content"`
	Priority    string             `gorm:"size:10;index;not null;default:normal" json:"priority"`
	IsPinned    bool               `gorm:"not null;default:false" json:"is_pinned"`
	PublishedAt *time.Time         `gorm:"index" json:"published_at"`
	ExpiresAt   *time.Time         `gorm:"index" json:"expires_at"`
	Attachment  *string            `gorm:"size:500" json:"attachment"`
	CategoryID  *uint              `gorm:"index" json:"category_id"`
	Category    *category.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID    *uint              `gorm:"index" json:"author_id"`
	Author      *auth.User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// State reports where the announcement sits at now. Expiry wins over everything else.
func (a Announcement) State(now time.Time) string {
	switch {
	case a.ExpiresAt != nil && !a.ExpiresAt.After(now):
		return StateExpired
	case a.PublishedAt == nil || a.PublishedAt.After(now):
		return StateScheduled
	default:
		return StateActive
	}
}

// DaysLeft is the number of started days until expiry, nil when the announcement never expires.
func (a Announcement) DaysLeft(now time.Time) *int {
	if a.ExpiresAt == nil {
		return nil
	}
	left := a.ExpiresAt.Sub(now)
	days := 0
	if left > 0 {
		days = int((left + 24*time.Hour - 1) / (24 * time.Hour))
	}
	return &days
}

type AnnouncementInput struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Slug        *string    `json:"slug" binding:"omitempty,slug,max=220"`
	Content     string     `json:"content" binding:"required"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high"`
	IsPinned    bool       `json:"is_pinned"`
	PublishedAt *time.Time `json:"published_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Attachment  *string    `json:"attachment" binding:"omitempty,max=500"`
	CategoryID  *uint      `json:"category_id"`
}

type Summary struct {
	Total      int               `json:"total"`
	Pinned     int               `json:"pinned"`
	Expired    int               `json:"expired"`
	Active     int               `json:"active"`
	Scheduled  int               `json:"scheduled"`
	ByPriority []aggregate.Group `json:"by_priority"`
	ByCategory []aggregate.Group `json:"by_category"`
}

type Listing struct {
	Items   []Announcement
	Page    jsonapi.Pagination
	Summary Summary
	At      time.Time
}
