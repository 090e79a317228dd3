package activitylog

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultSearchPageSize = 20
	maxSearchPageSize     = 100
	aggregateLimit        = 12
)

type LogService struct {
	DB *gorm.DB
	// Now is overridable in tests.
	Now func() time.Time
}

func (ls *LogService) now() time.Time {
	if ls.Now != nil {
		return ls.Now()
	}
	return time.Now()
}

// Log stores an entry. Properties that cannot be marshalled are dropped rather than failing the insert.
func (ls *LogService) Log(entry ActivityLog, properties any) error {
	var props datatypes.JSON
	if properties != nil {
		if b, err := json.Marshal(properties); err == nil {
			props = datatypes.JSON(b)
		}
	}

	row := ActivityLog{
		Level:      entry.Level,
		Subject:    entry.Subject,
		SubjectID:  entry.SubjectID,
		Action:     entry.Action,
		Message:    entry.Message,
		UserID:     entry.UserID,
		Properties: props,
		CreatedAt:  ls.now(),
	}
	if row.Level == "" {
		row.Level = LevelInfo
	}
	return ls.DB.Create(&row).Error
}

// normalizePaging defaults missing paging and clamps page_size to the maximum.
func (in *SearchInput) normalizePaging() {
	if in.Page <= 0 {
		in.Page = 1
	}
	switch {
	case in.PageSize <= 0:
		in.PageSize = defaultSearchPageSize
	case in.PageSize > maxSearchPageSize:
		in.PageSize = maxSearchPageSize
	}
}

func (ls *LogService) Search(input SearchInput) ([]Row, Aggregates, int64, int, error) {
	input.normalizePaging()

	base := ls.DB.
		Table("activity_logs").
		Select("activity_logs.*, COALESCE(u.name, '') AS user_name").
		Joins("LEFT JOIN users u ON activity_logs.user_id = u.id")

	if input.StartDate == nil && input.EndDate == nil {
		base = base.Where("activity_logs.created_at >= ?", ls.now().AddDate(0, 0, -30))
	}

	if input.UserID != nil {
		base = base.Where("activity_logs.user_id = ?", *input.UserID)
	}
	if v := trimmed(input.Level); v != "" {
		base = base.Where("activity_logs.level = ?", strings.ToUpper(v))
	}
	if v := trimmed(input.Subject); v != "" {
		base = base.Where("activity_logs.subject = ?", v)
	}
	if input.SubjectID != nil {
		base = base.Where("activity_logs.subject_id = ?", *input.SubjectID)
	}
	if v := trimmed(input.Action); v != "" {
		base = base.Where("activity_logs.action = ?", strings.ToUpper(v))
	}

	start, hasStart, endExclusive, hasEnd, err := util.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, Aggregates{}, 0, 0, apperr.BadRequest("%v", err)
	}
	if hasStart {
		base = base.Where("activity_logs.created_at >= ?", start)
	}
	if hasEnd {
		base = base.Where("activity_logs.created_at < ?", endExclusive)
	}

	if v := trimmed(input.Search); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		base = base.Where(
			`LOWER(activity_logs.subject) LIKE ?
			 OR LOWER(activity_logs.action) LIKE ?
			 OR LOWER(activity_logs.message) LIKE ?
			 OR LOWER(COALESCE(u.name,'')) LIKE ?`,
			like, like, like, like,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Aggregates{}, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(input.PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	rows := []Row{}
	if err := base.
		Session(&gorm.Session{}).
		Order("activity_logs.created_at DESC").
		Order("activity_logs.id DESC").
		Limit(input.PageSize).
		Offset((input.Page - 1) * input.PageSize).
		Scan(&rows).Error; err != nil {
		return nil, Aggregates{}, 0, 0, err
	}

	aggs, err := ls.aggregatesFromBase(base)
	if err != nil {
		return nil, Aggregates{}, 0, 0, err
	}

	return rows, aggs, total, totalPages, nil
}

func (ls *LogService) aggregatesFromBase(base *gorm.DB) (Aggregates, error) {
	aggs := Aggregates{}

	sub := base.Session(&gorm.Session{}).
		Select("activity_logs.user_id, activity_logs.subject, activity_logs.action, u.name AS user_name")
	derived := ls.DB.Table("(?) as x", sub)

	byColumn := func(expr string) ([]AggItem, error) {
		out := []AggItem{}
		err := derived.Session(&gorm.Session{}).
			Select(expr + " AS label, COUNT(*) AS count").
			Group("label").
			Order("count DESC").
			Order("label ASC").
			Limit(aggregateLimit).
			Scan(&out).Error
		return out, err
	}

	var err error
	if aggs.ByAction, err = byColumn("COALESCE(NULLIF(TRIM(x.action), ''), 'Unknown')"); err != nil {
		return Aggregates{}, err
	}
	if aggs.BySubject, err = byColumn("COALESCE(NULLIF(TRIM(x.subject), ''), 'Unknown')"); err != nil {
		return Aggregates{}, err
	}

	aggs.ByUser = []UserAggItem{}
	if err := derived.Session(&gorm.Session{}).
		Select(`
			x.user_id,
			CASE
				WHEN COALESCE(x.user_name,'') = '' THEN 'System'
				ELSE x.user_name
			END AS label,
			COUNT(*) AS count
		`).
		Group("x.user_id, label").
		Order("count DESC").
		Order("label ASC").
		Limit(aggregateLimit).
		Scan(&aggs.ByUser).Error; err != nil {
		return Aggregates{}, err
	}

	return aggs, nil
}

// Recent returns the newest entries for the dashboard feed.
func (ls *LogService) Recent(ctx context.Context, limit int) ([]Row, error) {
	rows := []Row{}
	err := ls.DB.WithContext(ctx).
		Table("activity_logs").
		Select("activity_logs.*, COALESCE(u.name, '') AS user_name").
		Joins("LEFT JOIN users u ON activity_logs.user_id = u.id").
		Order("activity_logs.created_at DESC").
		Order("activity_logs.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
