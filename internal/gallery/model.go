package gallery

import (
	"time"

	"school-cms-api/internal/category"
	"school-cms-api/internal/jsonapi"

	"gorm.io/gorm"
)

type Gallery struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Title       string             `gorm:"size:200;not null" json:"title"`
	Slug        string             `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description *string            `gorm:"type:text" json:"description"`
	CategoryID  *uint              `gorm:"index" json:"category_id"`
	Category    *category.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CoverURL    *string            `gorm:"size:500" json:"cover_url"`
	EventDate   *time.Time         `gorm:"index" json:"event_date"`
	IsPublished bool               `gorm:"not null" json:"is_published"`
	Images      []GalleryImage     `gorm:"foreignKey:GalleryID" json:"images,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (Gallery) TableName() string {
	return "galleries"
}

// Cover is the explicit cover, else the first image.
func (g Gallery) Cover() *string {
	if g.CoverURL != nil && *g.CoverURL != "" {
		return g.CoverURL
	}
	if len(g.Images) > 0 {
		u := g.Images[0].URL
		return &u
	}
	return nil
}

type GalleryImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GalleryID uint      `gorm:"index;not null" json:"gallery_id"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	Caption   *string   `gorm:"size:300" json:"caption"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}

type GalleryInput struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Slug        *string    `json:"slug" binding:"omitempty,slug,max=220"`
	Description *string    `json:"description"`
	CategoryID  *uint      `json:"category_id"`
	CoverURL    *string    `json:"cover_url" binding:"omitempty,max=500"`
	EventDate   *time.Time `json:"event_date"`
	IsPublished bool       `json:"is_published"`
}

type ImageInput struct {
	URL       string  `json:"url" binding:"required,url,max=500"`
	Caption   *string `json:"caption" binding:"omitempty,max=300"`
	SortOrder *int    `json:"sort_order"`
}

type ImagesInput struct {
	Images []ImageInput `json:"images" binding:"required,min=1,max=100,dive"`
}

type Summary struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Images    int `json:"images"`
}

type Listing struct {
	Items   []Gallery
	Page    jsonapi.Pagination
	Summary Summary
	// IncludeImages is set when the client asked for images in the included section.
	IncludeImages bool
}
