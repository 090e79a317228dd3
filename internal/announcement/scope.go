package announcement

import (
	"strings"
	"time"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"
	"school-cms-api/internal/util"

	"gorm.io/gorm"
)

const priorityRank = "CASE priority WHEN 'high' THEN 3 WHEN 'normal' THEN 2 ELSE 1 END"

var sortable = map[string]string{
	"published_at": "published_at",
	"expires_at":   "expires_at",
	"title":        "title",
	"priority":     priorityRank,
	"pinned":       "is_pinned",
}

var includes = map[string]string{
	"category": "Category",
	"author":   "Author",
}

// stateClause returns the SQL condition matching State(now) == state.
func stateClause(state string, now time.Time) (string, []any, bool) {
	switch state {
	case StateExpired:
		return "(expires_at IS NOT NULL AND expires_at <= ?)", []any{now}, true
	case StateScheduled:
		return "((expires_at IS NULL OR expires_at > ?) AND (published_at IS NULL OR published_at > ?))", []any{now, now}, true
	case StateActive:
		return "((expires_at IS NULL OR expires_at > ?) AND published_at IS NOT NULL AND published_at <= ?)", []any{now, now}, true
	}
	return "", nil, false
}

// Active limits a query to announcements the site shows at now.
func Active(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		clause, args, _ := stateClause(StateActive, now)
		return q.Where(clause, args...)
	}
}

type scope struct {
	now repository.Clock
}

func (s scope) ApplyFilters(q *gorm.DB, filters map[string]string) (*gorm.DB, error) {
	var err error
	now := s.now.Now()

	if filters["visibility"] == "public" {
		q = q.Scopes(Active(now))
	}

	if states := util.ParseCSVList(filters["state"]); len(states) > 0 {
		parts := make([]string, 0, len(states))
		args := []any{}
		for _, st := range states {
			clause, a, ok := stateClause(strings.ToLower(st), now)
			if !ok {
				return nil, apperr.BadRequest("unknown state %q", st)
			}
			parts = append(parts, clause)
			args = append(args, a...)
		}
		q = q.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	if q, err = repository.Bool(q, "is_pinned", filters["pinned"]); err != nil {
		return nil, err
	}
	q = repository.In(q, "priority", filters["priority"])

	if slugs := util.ParseCSVList(filters["category"]); len(slugs) > 0 {
		q = q.Where("category_id IN (SELECT id FROM categories WHERE slug IN ? AND deleted_at IS NULL)", slugs)
	}

	q = repository.Search(q, filters["search"], "title", "content")

	return repository.DateRange(q, "published_at", filters["published_from"], filters["published_to"])
}

// Pinned announcements come first, newest publication next.
func (scope) ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	return repository.OrderBy(q, sorts, sortable,
		jsonapi.Sort{Field: "pinned", Desc: true},
		jsonapi.Sort{Field: "published_at", Desc: true},
	)
}
