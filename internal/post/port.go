package post

import (
	"context"

	"school-cms-api/internal/jsonapi"
)

type PostServiceAPI interface {
	List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	Show(ctx context.Context, slug string, includes []string) (*Post, error)
	GetByID(ctx context.Context, id uint, includes []string) (*Post, error)
	Create(ctx context.Context, authorID uint, in PostInput) (*Post, error)
	Update(ctx context.Context, id uint, in PostInput) (*Post, error)
	Delete(ctx context.Context, id uint) error
	GenerateExcerpt(ctx context.Context, id uint) (*Post, error)
}

var _ PostServiceAPI = (*PostService)(nil)
