package facility

import (
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/jsonapi"

	"gorm.io/gorm"
)

const (
	ConditionGood        = "good"
	ConditionFair        = "fair"
	ConditionNeedsRepair = "needs_repair"
)

type Facility struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Slug        string         `gorm:"size:180;uniqueIndex;not null" json:"slug"`
	Description *string        `gorm:"type:text" json:"description"`
	Type        string         `gorm:"size:50;index" json:"type"`
	AreaSqm     float64        `gorm:"not null;default:0" json:"area_sqm"`
	Capacity    int            `gorm:"not null;default:0" json:"capacity"`
	ImageURL    *string        `gorm:"size:500" json:"image_url"`
	Condition   string         `gorm:"size:20;index;not null;default:good" json:"condition"`
	IsAvailable bool           `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Facility) TableName() string {
	return "facilities"
}

type FacilityInput struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Slug        *string `json:"slug" binding:"omitempty,slug,max=180"`
	Description *string `json:"description"`
	Type        string  `json:"type" binding:"omitempty,max=50"`
	AreaSqm     float64 `json:"area_sqm" binding:"gte=0"`
	Capacity    int     `json:"capacity" binding:"gte=0"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=500"`
	Condition   string  `json:"condition" binding:"omitempty,oneof=good fair needs_repair"`
	IsAvailable *bool   `json:"is_available"`
}

type Largest struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	AreaSqm float64 `json:"area_sqm"`
}

type Summary struct {
	Total         int               `json:"total"`
	Available     int               `json:"available"`
	TotalArea     float64           `json:"total_area"`
	TotalCapacity int               `json:"total_capacity"`
	ByType        []aggregate.Group `json:"by_type"`
	ByCondition   []aggregate.Group `json:"by_condition"`
	Largest       []Largest         `json:"largest"`
}

type Listing struct {
	Items   []Facility
	Page    jsonapi.Pagination
	Summary Summary
}
