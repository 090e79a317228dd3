package announcement

import (
	"context"
	"time"

	"school-cms-api/internal/jsonapi"
)

type AnnouncementServiceAPI interface {
	List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	Show(ctx context.Context, slug string, includes []string) (*Announcement, error)
	GetByID(ctx context.Context, id uint, includes []string) (*Announcement, error)
	Create(ctx context.Context, authorID uint, in AnnouncementInput) (*Announcement, error)
	Update(ctx context.Context, id uint, in AnnouncementInput) (*Announcement, error)
	Delete(ctx context.Context, id uint) error
	Now() time.Time
}

var _ AnnouncementServiceAPI = (*AnnouncementService)(nil)
