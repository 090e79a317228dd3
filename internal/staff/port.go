package staff

import (
	"context"
	"io"
	"time"

	"school-cms-api/internal/jsonapi"
)

type StaffServiceAPI interface {
	List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	Show(ctx context.Context, slug string) (*Staff, error)
	GetByID(ctx context.Context, id uint) (*Staff, error)
	Create(ctx context.Context, in StaffInput) (*Staff, error)
	Update(ctx context.Context, id uint, in StaffInput) (*Staff, error)
	Delete(ctx context.Context, id uint) error
	Import(ctx context.Context, r io.Reader, format string) (*ImportResult, error)
	Now() time.Time
}

var _ StaffServiceAPI = (*StaffService)(nil)
