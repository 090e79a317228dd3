package post

import (
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/jsonapi"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Post struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Title       string             `gorm:"size:200;not null" json:"title"`
	Slug        string             `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Excerpt     *string            `gorm:"type:text" json:"excerpt"`
	Content     string             `gorm:"type:text;not null" json:"content"`
	CoverImage  *string            `gorm:"size:500" json:"cover_image"`
	Status      string             `gorm:"size:20;index;not null;default:draft" json:"status"`
	PublishedAt *time.Time         `gorm:"index" json:"published_at"`
	Views       int64              `gorm:"not null;default:0" json:"views"`
	Tags        pq.StringArray     `gorm:"type:text[]" json:"tags"`
	IsFeatured  bool               `gorm:"not null;default:false" json:"is_featured"`
	CategoryID  *uint              `gorm:"index" json:"category_id"`
	Category    *category.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID    *uint              `gorm:"index" json:"author_id"`
	Author      *auth.User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

type PostInput struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Slug        *string    `json:"slug" binding:"omitempty,slug,max=220"`
	Excerpt     *string    `json:"excerpt" binding:"omitempty,max=1000"`
	Content     string     `json:"content" binding:"required"`
	CoverImage  *string    `json:"cover_image" binding:"omitempty,max=500"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft published archived"`
	PublishedAt *time.Time `json:"published_at"`
	Tags        []string   `json:"tags" binding:"omitempty,max=20,dive,required,max=50"`
	IsFeatured  bool       `json:"is_featured"`
	CategoryID  *uint      `json:"category_id"`
}

type Popular struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

type Summary struct {
	Total      int               `json:"total"`
	Published  int               `json:"published"`
	Draft      int               `json:"draft"`
	Archived   int               `json:"archived"`
	Featured   int               `json:"featured"`
	TotalViews int64             `json:"total_views"`
	ByCategory []aggregate.Group `json:"by_category"`
	Popular    []Popular         `json:"popular"`
}

type Listing struct {
	Items   []Post
	Page    jsonapi.Pagination
	Summary Summary
}
