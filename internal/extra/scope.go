package extra

import (
	"strconv"
	"strings"

	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

var sortable = map[string]string{
	"name":    "name",
	"members": "members_count",
}

var includes = map[string]string{
	"coach": "Coach",
}

func Active(q *gorm.DB) *gorm.DB {
	return q.Where("is_active = ?", true)
}

type scope struct{}

func (scope) ApplyFilters(q *gorm.DB, filters map[string]string) (*gorm.DB, error) {
	var err error

	if filters["visibility"] == "public" {
		q = q.Scopes(Active)
	}
	q = repository.In(q, "category", filters["category"])
	if q, err = repository.Bool(q, "is_active", filters["active"]); err != nil {
		return nil, err
	}

	// coach accepts an id or a staff slug
	if raw := strings.TrimSpace(filters["coach"]); raw != "" {
		if id, convErr := strconv.ParseUint(raw, 10, 64); convErr == nil {
			q = q.Where("coach_id = ?", id)
		} else {
			q = q.Where("coach_id IN (SELECT id FROM staff WHERE slug = ? AND deleted_at IS NULL)", raw)
		}
	}

	q = repository.Search(q, filters["search"], "name", "description", "category", "location")
	return q, nil
}

func (scope) ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	return repository.OrderBy(q, sorts, sortable, jsonapi.Sort{Field: "name"})
}
