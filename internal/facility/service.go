package facility

import (
	"context"
	"strings"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

type FacilityService struct {
	DB   *gorm.DB
	Repo *repository.Repository[Facility]
}

func NewFacilityService(db *gorm.DB) *FacilityService {
	return &FacilityService{DB: db, Repo: repository.New[Facility](db, scope{}, nil)}
}

func (s *FacilityService) List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	items, page, err := s.Repo.Paginate(ctx, params)
	if err != nil {
		return nil, err
	}
	all, err := s.Repo.All(ctx, params)
	if err != nil {
		return nil, err
	}
	return &Listing{Items: items, Page: page, Summary: Summarize(all)}, nil
}

// Summarize groups facilities by type weighted by floor area, so equal counts are broken
// by the larger total area.
func Summarize(all []Facility) Summary {
	area := func(f Facility) float64 { return f.AreaSqm }

	sum := Summary{
		Total:       len(all),
		Available:   aggregate.Count(all, func(f Facility) bool { return f.IsAvailable }),
		TotalArea:   aggregate.Round(aggregate.Sum(all, area), 2),
		ByType:      aggregate.GroupBy(all, func(f Facility) string { return f.Type }, area, "Other"),
		ByCondition: aggregate.CountBy(all, func(f Facility) string { return f.Condition }, ConditionGood),
		Largest:     []Largest{},
	}
	for _, f := range all {
		sum.TotalCapacity += f.Capacity
	}

	top := aggregate.TopN(all, 3, func(a, b Facility) bool {
		if a.AreaSqm != b.AreaSqm {
			return a.AreaSqm > b.AreaSqm
		}
		return a.Name < b.Name
	})
	for _, f := range top {
		sum.Largest = append(sum.Largest, Largest{ID: f.ID, Name: f.Name, Slug: f.Slug, AreaSqm: f.AreaSqm})
	}
	return sum
}

func (s *FacilityService) Get(ctx context.Context, slug string) (*Facility, error) {
	return s.Repo.FindBySlug(ctx, slug)
}

func (s *FacilityService) GetByID(ctx context.Context, id uint) (*Facility, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *FacilityService) Create(ctx context.Context, in FacilityInput) (*Facility, error) {
	slug, err := s.Repo.ResolveSlug(ctx, deref(in.Slug), in.Name, 0)
	if err != nil {
		return nil, err
	}

	f := Facility{Slug: slug, IsAvailable: true}
	apply(&f, in)
	if err := s.Repo.Create(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FacilityService) Update(ctx context.Context, id uint, in FacilityInput) (*Facility, error) {
	f, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != f.Slug {
		slug, err := s.Repo.ResolveSlug(ctx, *in.Slug, in.Name, id)
		if err != nil {
			return nil, err
		}
		f.Slug = slug
	}
	apply(f, in)

	if err := s.Repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FacilityService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

func apply(f *Facility, in FacilityInput) {
	f.Name = strings.TrimSpace(in.Name)
	f.Description = in.Description
	f.Type = strings.TrimSpace(in.Type)
	f.AreaSqm = in.AreaSqm
	f.Capacity = in.Capacity
	f.ImageURL = in.ImageURL
	f.Condition = in.Condition
	if f.Condition == "" {
		f.Condition = ConditionGood
	}
	if in.IsAvailable != nil {
		f.IsAvailable = *in.IsAvailable
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
