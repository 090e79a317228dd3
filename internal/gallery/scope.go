package gallery

import (
	"sort"

	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"
	"school-cms-api/internal/util"

	"gorm.io/gorm"
)

var sortable = map[string]string{
	"event_date": "event_date",
	"title":      "title",
	"created_at": "created_at",
}

var includes = map[string]string{
	"images":   "Images",
	"category": "Category",
}

func Published(q *gorm.DB) *gorm.DB {
	return q.Where("is_published = ?", true)
}

type scope struct{}

func (scope) ApplyFilters(q *gorm.DB, filters map[string]string) (*gorm.DB, error) {
	var err error

	if filters["visibility"] == "public" {
		q = q.Scopes(Published)
	}
	if slugs := util.ParseCSVList(filters["category"]); len(slugs) > 0 {
		q = q.Where("category_id IN (SELECT id FROM categories WHERE slug IN ? AND deleted_at IS NULL)", slugs)
	}
	if q, err = repository.Bool(q, "is_published", filters["published"]); err != nil {
		return nil, err
	}
	q = repository.Search(q, filters["search"], "title", "description")

	return repository.DateRange(q, "event_date", filters["event_from"], filters["event_to"])
}

func (scope) ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	return repository.OrderBy(q, sorts, sortable, jsonapi.Sort{Field: "event_date", Desc: true})
}

func sortImages(images []GalleryImage) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].SortOrder != images[j].SortOrder {
			return images[i].SortOrder < images[j].SortOrder
		}
		return images[i].ID < images[j].ID
	})
}
