package facility

import (
	"context"

	"school-cms-api/internal/jsonapi"
)

type FacilityServiceAPI interface {
	List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error)
	Get(ctx context.Context, slug string) (*Facility, error)
	GetByID(ctx context.Context, id uint) (*Facility, error)
	Create(ctx context.Context, in FacilityInput) (*Facility, error)
	Update(ctx context.Context, id uint, in FacilityInput) (*Facility, error)
	Delete(ctx context.Context, id uint) error
}

var _ FacilityServiceAPI = (*FacilityService)(nil)
