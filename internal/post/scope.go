package post

import (
	"strconv"
	"strings"
	"time"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"
	"school-cms-api/internal/util"

	"gorm.io/gorm"
)

var sortable = map[string]string{
	"published_at": "published_at",
	"title":        "title",
	"views":        "views",
	"created_at":   "created_at",
}

var includes = map[string]string{
	"category": "Category",
	"author":   "Author",
}

// Visible limits a query to what the public site may show at now.
func Visible(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ? AND published_at IS NOT NULL AND published_at <= ?", StatusPublished, now)
	}
}

type scope struct {
	now repository.Clock
}

func (s scope) ApplyFilters(q *gorm.DB, filters map[string]string) (*gorm.DB, error) {
	var err error

	if filters["visibility"] == "public" {
		q = q.Scopes(Visible(s.now.Now()))
	}
	q = repository.In(q, "status", filters["status"])

	if slugs := util.ParseCSVList(filters["category"]); len(slugs) > 0 {
		q = q.Where("category_id IN (SELECT id FROM categories WHERE slug IN ? AND deleted_at IS NULL)", slugs)
	}

	if tag := strings.ToLower(strings.TrimSpace(filters["tag"])); tag != "" {
		q = withTag(q, tag)
	}

	if q, err = repository.Bool(q, "is_featured", filters["featured"]); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(filters["author"]); raw != "" {
		id, convErr := strconv.ParseUint(raw, 10, 64)
		if convErr != nil {
			return nil, apperr.BadRequest("filter on author expects an id, got %q", raw)
		}
		q = q.Where("author_id = ?", id)
	}

	q = repository.Search(q, filters["search"], "title", "excerpt", "content")

	return repository.DateRange(q, "published_at", filters["published_from"], filters["published_to"])
}

func (scope) ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	return repository.OrderBy(q, sorts, sortable, jsonapi.Sort{Field: "published_at", Desc: true})
}

// withTag matches one tag, which callers lowercase like stored tags. Postgres searches the
// array natively; other drivers see the array literal pq writes, where every element is quoted.
func withTag(q *gorm.DB, tag string) *gorm.DB {
	if q.Dialector.Name() == "postgres" {
		return q.Where("? = ANY(tags)", tag)
	}
	return q.Where("tags LIKE ?", `%"`+tag+`"%`)
}
