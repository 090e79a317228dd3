package repository

import (
	"strings"
	"time"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/util"

	"gorm.io/gorm"
)

func slugify(s string) string { return util.Slugify(s) }

// OrderBy applies client sorts through a whitelist mapping sort names to columns.
// With no sorts the defaults are used.
func OrderBy(q *gorm.DB, sorts []jsonapi.Sort, allowed map[string]string, defaults ...jsonapi.Sort) (*gorm.DB, error) {
	if len(sorts) == 0 {
		sorts = defaults
	}
	for _, s := range sorts {
		col, ok := allowed[s.Field]
		if !ok {
			return nil, apperr.BadRequest("unsupported sort field %q", s.Field)
		}
		dir := " ASC"
		if s.Desc {
			dir = " DESC"
		}
		q = q.Order(col + dir)
	}
	return q.Order("id DESC"), nil
}

// Search matches term case-insensitively against any of the columns.
func Search(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	like := "%" + strings.ToLower(term) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, "LOWER(COALESCE("+c+", '')) LIKE ?")
		args = append(args, like)
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// Bool applies column = value when raw parses as a flag, and rejects garbage.
func Bool(q *gorm.DB, column, raw string) (*gorm.DB, error) {
	if strings.TrimSpace(raw) == "" {
		return q, nil
	}
	v, ok := util.ParseBool(raw)
	if !ok {
		return nil, apperr.BadRequest("filter on %s expects a boolean, got %q", column, raw)
	}
	return q.Where(column+" = ?", v), nil
}

// In applies column IN (values) for a comma separated filter value.
func In(q *gorm.DB, column, raw string) *gorm.DB {
	values := util.ParseCSVList(raw)
	if len(values) == 0 {
		return q
	}
	if len(values) == 1 {
		return q.Where(column+" = ?", values[0])
	}
	return q.Where(column+" IN ?", values)
}

// DateRange applies [from, to) on column using util.ParseDateRange semantics.
func DateRange(q *gorm.DB, column, from, to string) (*gorm.DB, error) {
	if from == "" && to == "" {
		return q, nil
	}
	start, hasStart, end, hasEnd, err := util.ParseDateRange(&from, &to)
	if err != nil {
		return nil, apperr.BadRequest("%v", err)
	}
	if hasStart {
		q = q.Where(column+" >= ?", start)
	}
	if hasEnd {
		q = q.Where(column+" < ?", end)
	}
	return q, nil
}

// Clock lets services pin "now" in tests.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
