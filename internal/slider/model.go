package slider

import (
	"time"

	"gorm.io/gorm"
)

type Slider struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"size:200;not null" json:"title"`
	Subtitle   *string        `gorm:"size:300" json:"subtitle"`
	ImageURL   string         `gorm:"size:500;not null" json:"image_url"`
	LinkURL    *string        `gorm:"size:500" json:"link_url"`
	ButtonText *string        `gorm:"size:60" json:"button_text"`
	SortOrder  int            `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive   bool           `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Slider) TableName() string {
	return "sliders"
}

type SliderInput struct {
	Title      string  `json:"title" binding:"required,max=200"`
	Subtitle   *string `json:"subtitle" binding:"omitempty,max=300"`
	ImageURL   string  `json:"image_url" binding:"required,max=500"`
	LinkURL    *string `json:"link_url" binding:"omitempty,max=500"`
	ButtonText *string `json:"button_text" binding:"omitempty,max=60"`
	SortOrder  *int    `json:"sort_order"`
	IsActive   *bool   `json:"is_active"`
}

type ReorderInput struct {
	IDs []uint `json:"ids" binding:"required,min=1,dive,gt=0"`
}
