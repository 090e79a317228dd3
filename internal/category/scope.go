package category

import (
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

var sortable = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type scope struct{}

func (scope) ApplyFilters(q *gorm.DB, filters map[string]string) (*gorm.DB, error) {
	q = repository.In(q, "type", filters["type"])
	q = repository.Search(q, filters["search"], "name", "description")
	return q, nil
}

func (scope) ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	return repository.OrderBy(q, sorts, sortable, jsonapi.Sort{Field: "name"})
}
