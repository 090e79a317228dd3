package activitylog

import (
	"time"

	"gorm.io/datatypes"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"

	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

type ActivityLog struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Level      string         `gorm:"size:20;not null" json:"level"`
	Subject    string         `gorm:"size:100;not null;index" json:"subject"`
	SubjectID  *uint          `gorm:"index" json:"subject_id,omitempty"`
	Action     string         `gorm:"size:100;not null" json:"action"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	UserID     *uint          `gorm:"index" json:"user_id,omitempty"`
	Properties datatypes.JSON `json:"properties,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

type SearchInput struct {
	UserID    *uint   `json:"user_id"`
	Level     *string `json:"level"`
	Subject   *string `json:"subject"`
	SubjectID *uint   `json:"subject_id"`
	Action    *string `json:"action"`

	StartDate *string `json:"start_date"` // "YYYY-MM-DD" or RFC3339
	EndDate   *string `json:"end_date"`

	Search   *string `json:"search"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

type AggItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type UserAggItem struct {
	UserID *uint  `json:"user_id,omitempty"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

type Aggregates struct {
	ByAction  []AggItem     `json:"by_action"`
	BySubject []AggItem     `json:"by_subject"`
	ByUser    []UserAggItem `json:"by_user"`
}

// Row is a log line joined with the acting user's name.
type Row struct {
	ActivityLog
	UserName string `json:"user_name" gorm:"column:user_name"`
}
