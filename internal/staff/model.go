package staff

import (
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/jsonapi"

	"gorm.io/gorm"
)

type Staff struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:150;not null" json:"name"`
	Slug           string         `gorm:"size:180;uniqueIndex;not null" json:"slug"`
	EmployeeNumber *string        `gorm:"size:30;uniqueIndex" json:"employee_number"`
	Position       string         `gorm:"size:100;index;not null" json:"position"`
	Department     string         `gorm:"size:100;index" json:"department"`
	Subject        *string        `gorm:"size:100" json:"subject"`
	Email          *string        `gorm:"size:150" json:"email"`
	Phone          *string        `gorm:"size:30" json:"phone"`
	PhotoURL       *string        `gorm:"size:500" json:"photo_url"`
	Bio            *string        `gorm:"type:text" json:"bio"`
	Education      *string        `gorm:"size:200" json:"education"`
	JoinedAt       *time.Time     `json:"joined_at"`
	IsActive       bool           `gorm:"not null" json:"is_active"`
	SortOrder      int            `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Staff) TableName() string {
	return "staff"
}

type StaffInput struct {
	Name           string     `json:"name" binding:"required,max=150"`
	Slug           *string    `json:"slug" binding:"omitempty,slug,max=180"`
	EmployeeNumber *string    `json:"employee_number" binding:"omitempty,max=30"`
	Position       string     `json:"position" binding:"required,max=100"`
	Department     string     `json:"department" binding:"omitempty,max=100"`
	Subject        *string    `json:"subject" binding:"omitempty,max=100"`
	Email          *string    `json:"email" binding:"omitempty,email,max=150"`
	Phone          *string    `json:"phone" binding:"omitempty,max=30"`
	PhotoURL       *string    `json:"photo_url" binding:"omitempty,max=500"`
	Bio            *string    `json:"bio"`
	Education      *string    `json:"education" binding:"omitempty,max=200"`
	JoinedAt       *time.Time `json:"joined_at"`
	IsActive       *bool      `json:"is_active"`
	SortOrder      int        `json:"sort_order"`
}

type Veteran struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Years int    `json:"years"`
}

type Summary struct {
	Total             int               `json:"total"`
	Active            int               `json:"active"`
	Inactive          int               `json:"inactive"`
	ByDepartment      []aggregate.Group `json:"by_department"`
	AverageExperience float64           `json:"average_experience"`
	MostExperienced   []Veteran         `json:"most_experienced"`
}

type Listing struct {
	Items   []Staff
	Page    jsonapi.Pagination
	Summary Summary
	At      time.Time
}

type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}
