package gallery

import (
	"context"

	"school-cms-api/internal/jsonapi"
)

type GalleryServiceAPI interface {
	List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	Show(ctx context.Context, slug string, includes []string) (*Gallery, error)
	GetByID(ctx context.Context, id uint, includes []string) (*Gallery, error)
	Create(ctx context.Context, in GalleryInput) (*Gallery, error)
	Update(ctx context.Context, id uint, in GalleryInput) (*Gallery, error)
	Delete(ctx context.Context, id uint) error
	AddImages(ctx context.Context, id uint, in ImagesInput) (*Gallery, error)
	RemoveImage(ctx context.Context, id, imageID uint) error
}

var _ GalleryServiceAPI = (*GalleryService)(nil)
