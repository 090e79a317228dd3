package extra

import (
	"context"

	"school-cms-api/internal/jsonapi"
)

type ExtraServiceAPI interface {
	List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	Show(ctx context.Context, slug string, includes []string) (*Extra, error)
	GetByID(ctx context.Context, id uint, includes []string) (*Extra, error)
	Create(ctx context.Context, in ExtraInput) (*Extra, error)
	Update(ctx context.Context, id uint, in ExtraInput) (*Extra, error)
	Delete(ctx context.Context, id uint) error
}

var _ ExtraServiceAPI = (*ExtraService)(nil)
