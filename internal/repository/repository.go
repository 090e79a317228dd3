// Package repository wraps gorm query building for the content tables. Each entity plugs
// its own filters and sort whitelist in through a Scope.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope is implemented per entity to apply filter[...] and sort parameters.
type Scope interface {
	ApplyFilters(q *gorm.DB, filters map[string]string) (*gorm.DB, error)
	ApplyOrdering(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error)
}

type Repository[T any] struct {
	DB    *gorm.DB
	Scope Scope
	// Includes maps include names accepted from clients to gorm associations to preload.
	Includes map[string]string
}

func New[T any](db *gorm.DB, scope Scope, includes map[string]string) *Repository[T] {
	return &Repository[T]{DB: db, Scope: scope, Includes: includes}
}

// WithTx returns a copy bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{DB: tx, Scope: r.Scope, Includes: r.Includes}
}

func (r *Repository[T]) model(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(new(T))
}

func (r *Repository[T]) filtered(ctx context.Context, params jsonapi.QueryParams) (*gorm.DB, error) {
	q := r.model(ctx)
	if r.Scope == nil {
		return q, nil
	}
	return r.Scope.ApplyFilters(q, params.Filters)
}

func (r *Repository[T]) ordered(q *gorm.DB, sorts []jsonapi.Sort) (*gorm.DB, error) {
	if r.Scope == nil {
		return q.Order("id DESC"), nil
	}
	return r.Scope.ApplyOrdering(q, sorts)
}

func (r *Repository[T]) preload(q *gorm.DB, includes []string) *gorm.DB {
	for _, inc := range includes {
		if assoc, ok := r.Includes[inc]; ok {
			q = q.Preload(assoc)
		}
	}
	return q
}

// Paginate applies filters, ordering, includes and paging, returning one page and its pagination.
func (r *Repository[T]) Paginate(ctx context.Context, params jsonapi.QueryParams) ([]T, jsonapi.Pagination, error) {
	params.Normalize()

	q, err := r.filtered(ctx, params)
	if err != nil {
		return nil, jsonapi.Pagination{}, err
	}
	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, jsonapi.Pagination{}, err
	}
	page := jsonapi.NewPagination(params.Page, params.PageSize, total)

	q, err = r.ordered(base, params.Sort)
	if err != nil {
		return nil, jsonapi.Pagination{}, err
	}

	items := []T{}
	if err := r.preload(q, params.Include).
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&items).Error; err != nil {
		return nil, jsonapi.Pagination{}, err
	}
	return items, page, nil
}

// All returns every row matching the filters, ordered, without paging.
func (r *Repository[T]) All(ctx context.Context, params jsonapi.QueryParams) ([]T, error) {
	q, err := r.filtered(ctx, params)
	if err != nil {
		return nil, err
	}
	q, err = r.ordered(q, params.Sort)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := r.preload(q, params.Include).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id uint, includes ...string) (*T, error) {
	var m T
	if err := r.preload(r.model(ctx), includes).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *Repository[T]) FindBySlug(ctx context.Context, slug string, includes ...string) (*T, error) {
	return r.FindWhere(ctx, includes, "slug = ?", slug)
}

// FindWhere returns the first row matching the condition.
func (r *Repository[T]) FindWhere(ctx context.Context, includes []string, query any, args ...any) (*T, error) {
	var m T
	if err := r.preload(r.model(ctx), includes).Where(query, args...).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *Repository[T]) Create(ctx context.Context, m *T) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(m).Error)
}

// Save writes every column of m; associations are left untouched.
func (r *Repository[T]) Save(ctx context.Context, m *T) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Save(m).Error)
}

// UpdateColumns updates only the given columns of the row with id.
func (r *Repository[T]) UpdateColumns(ctx context.Context, id uint, fields map[string]any) error {
	res := r.model(ctx).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete soft-deletes the row when T embeds gorm.DeletedAt.
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Count(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	err := r.model(ctx).Scopes(scopes...).Count(&n).Error
	return n, err
}

// SlugExists also sees soft-deleted rows, since they still hold the unique index.
func (r *Repository[T]) SlugExists(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var n int64
	q := r.DB.WithContext(ctx).Unscoped().Model(new(T)).Where("slug = ?", slug)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ResolveSlug validates an explicit slug (which must be free) or derives a unique one from
// source by appending -2, -3, ...
func (r *Repository[T]) ResolveSlug(ctx context.Context, explicit, source string, exceptID uint) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		exists, err := r.SlugExists(ctx, explicit, exceptID)
		if err != nil {
			return "", err
		}
		if exists {
			return "", apperr.Duplicate(fmt.Sprintf("slug %q is already taken", explicit))
		}
		return explicit, nil
	}

	base := slugify(source)
	candidate := base
	for i := 2; ; i++ {
		exists, err := r.SlugExists(ctx, candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", apperr.ErrDuplicate, err)
	}
	return err
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "sqlstate 23505")
}
