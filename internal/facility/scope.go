package facility

import (
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

var sortable = map[string]string{
	"name":     "name",
	"area":     "area_sqm",
	"capacity": "capacity",
}

type scope struct{}

func (scope) ApplyFilters(q *gorm.DB, filters map[string]string) (*gorm.DB, error) {
	var err error

	q = repository.In(q, "type", filters["type"])
	q = repository.In(q, "condition", filters["condition"])
	if q, err = repository.Bool(q, "is_available", filters["available"]); err != nil {
		return nil, err
	}
	q = repository.Search(q, filters["search"], "name", "description", "type")
	return q, nil
}

func (scope) ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	return repository.OrderBy(q, sorts, sortable, jsonapi.Sort{Field: "name"})
}
