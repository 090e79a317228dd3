package staff

import (
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

var sortable = map[string]string{
	"sort_order": "sort_order",
	"name":       "name",
	"joined_at":  "joined_at",
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
	q = repository.In(q, "department", filters["department"])
	q = repository.In(q, "position", filters["position"])
	if q, err = repository.Bool(q, "is_active", filters["active"]); err != nil {
		return nil, err
	}
	q = repository.Search(q, filters["search"], "name", "position", "department", "subject", "email")
	return q, nil
}

func (scope) ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	return repository.OrderBy(q, sorts, sortable, jsonapi.Sort{Field: "sort_order"}, jsonapi.Sort{Field: "name"})
}
