package category

import (
	"context"

	"school-cms-api/internal/jsonapi"
)

type CategoryServiceAPI interface {
	List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	Get(ctx context.Context, slug string) (*Category, int64, error)
	GetByID(ctx context.Context, id uint) (*Category, int64, error)
	Create(ctx context.Context, in CategoryInput) (*Category, error)
	Update(ctx context.Context, id uint, in CategoryInput) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

var _ CategoryServiceAPI = (*CategoryService)(nil)
