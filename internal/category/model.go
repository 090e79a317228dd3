package category

import (
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/jsonapi"

	"gorm.io/gorm"
)

const (
	TypePost         = "post"
	TypeAnnouncement = "announcement"
	TypeGallery      = "gallery"
)

type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Slug        string         `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Type        string         `gorm:"size:20;index;not null;default:post" json:"type"`
	Description *string        `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

type CategoryInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,slug,max=120"`
	Type        string  `json:"type" binding:"omitempty,oneof=post announcement gallery"`
	Description *string `json:"description"`
}

type Summary struct {
	Total  int               `json:"total"`
	ByType []aggregate.Group `json:"by_type"`
}

// Listing is one page of categories plus the summary over every filtered row.
type Listing struct {
	Items      []Category
	Page       jsonapi.Pagination
	Summary    Summary
	PostCounts map[uint]int64
}
