package extra

import (
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/staff"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Extra is an extracurricular activity. MaxMembers 0 means unlimited.
type Extra struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:150;not null" json:"name"`
	Slug         string         `gorm:"size:180;uniqueIndex;not null" json:"slug"`
	Description  *string        `gorm:"type:text" json:"description"`
	Category     string         `gorm:"size:50;index" json:"category"`
	CoachID      *uint          `gorm:"index" json:"coach_id"`
	Coach        *staff.Staff   `gorm:"foreignKey:CoachID" json:"coach,omitempty"`
	Schedule     *string        `gorm:"size:150" json:"schedule"`
	Location     *string        `gorm:"size:150" json:"location"`
	MembersCount int            `gorm:"not null;default:0" json:"members_count"`
	MaxMembers   int            `gorm:"not null;default:0" json:"max_members"`
	ImageURL     *string        `gorm:"size:500" json:"image_url"`
	Achievements pq.StringArray `gorm:"type:text[]" json:"achievements"`
	IsActive     bool           `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Extra) TableName() string {
	return "extras"
}

func (e Extra) IsFull() bool {
	return e.MaxMembers > 0 && e.MembersCount >= e.MaxMembers
}

// FillRate is the member count as a percentage of MaxMembers, one decimal.
func (e Extra) FillRate() float64 {
	if e.MaxMembers <= 0 {
		return 0
	}
	return aggregate.Round(float64(e.MembersCount)*100/float64(e.MaxMembers), 1)
}

type ExtraInput struct {
	Name         string   `json:"name" binding:"required,max=150"`
	Slug         *string  `json:"slug" binding:"omitempty,slug,max=180"`
	Description  *string  `json:"description"`
	Category     string   `json:"category" binding:"omitempty,max=50"`
	CoachID      *uint    `json:"coach_id"`
	Schedule     *string  `json:"schedule" binding:"omitempty,max=150"`
	Location     *string  `json:"location" binding:"omitempty,max=150"`
	MembersCount int      `json:"members_count" binding:"gte=0"`
	MaxMembers   int      `json:"max_members" binding:"gte=0"`
	ImageURL     *string  `json:"image_url" binding:"omitempty,max=500"`
	Achievements []string `json:"achievements" binding:"omitempty,max=50,dive,required,max=200"`
	IsActive     *bool    `json:"is_active"`
}

type Popular struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	MembersCount int    `json:"members_count"`
}

type Summary struct {
	Total        int               `json:"total"`
	Active       int               `json:"active"`
	TotalMembers int               `json:"total_members"`
	ByCategory   []aggregate.Group `json:"by_category"`
	MostPopular  []Popular         `json:"most_popular"`
}

type Listing struct {
	Items   []Extra
	Page    jsonapi.Pagination
	Summary Summary
}
