package extra

import (
	"context"
	"strings"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ExtraService struct {
	DB   *gorm.DB
	Repo *repository.Repository[Extra]
}

func NewExtraService(db *gorm.DB) *ExtraService {
	return &ExtraService{DB: db, Repo: repository.New[Extra](db, scope{}, includes)}
}

func (s *ExtraService) List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	items, page, err := s.Repo.Paginate(ctx, params)
	if err != nil {
		return nil, err
	}

	summaryParams := params
	summaryParams.Include = nil
	all, err := s.Repo.All(ctx, summaryParams)
	if err != nil {
		return nil, err
	}
	return &Listing{Items: items, Page: page, Summary: Summarize(all)}, nil
}

func (s *ExtraService) ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	return s.List(ctx, params.WithFilter("visibility", "public"))
}

func Summarize(all []Extra) Summary {
	sum := Summary{
		Total:  len(all),
		Active: aggregate.Count(all, func(e Extra) bool { return e.IsActive }),
		ByCategory: aggregate.GroupBy(all,
			func(e Extra) string { return e.Category },
			func(e Extra) float64 { return float64(e.MembersCount) },
			"Other",
		),
		MostPopular: []Popular{},
	}
	for _, e := range all {
		sum.TotalMembers += e.MembersCount
	}

	top := aggregate.TopN(all, 3, func(a, b Extra) bool {
		if a.MembersCount != b.MembersCount {
			return a.MembersCount > b.MembersCount
		}
		return a.Name < b.Name
	})
	for _, e := range top {
		sum.MostPopular = append(sum.MostPopular, Popular{ID: e.ID, Name: e.Name, Slug: e.Slug, MembersCount: e.MembersCount})
	}
	return sum
}

func (s *ExtraService) Show(ctx context.Context, slug string, includes []string) (*Extra, error) {
	return s.Repo.FindWhere(ctx, includes, "slug = ? AND is_active = ?", slug, true)
}

func (s *ExtraService) GetByID(ctx context.Context, id uint, includes []string) (*Extra, error) {
	return s.Repo.FindByID(ctx, id, includes...)
}

func (s *ExtraService) Create(ctx context.Context, in ExtraInput) (*Extra, error) {
	if err := s.checkCoach(ctx, in.CoachID); err != nil {
		return nil, err
	}

	slug, err := s.Repo.ResolveSlug(ctx, deref(in.Slug), in.Name, 0)
	if err != nil {
		return nil, err
	}

	e := Extra{Slug: slug, IsActive: true}
	apply(&e, in)
	if err := s.Repo.Create(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExtraService) Update(ctx context.Context, id uint, in ExtraInput) (*Extra, error) {
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCoach(ctx, in.CoachID); err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != e.Slug {
		slug, err := s.Repo.ResolveSlug(ctx, *in.Slug, in.Name, id)
		if err != nil {
			return nil, err
		}
		e.Slug = slug
	}
	apply(e, in)

	if err := s.Repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExtraService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

func (s *ExtraService) checkCoach(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := s.DB.WithContext(ctx).Table("staff").
		Where("id = ? AND deleted_at IS NULL", *id).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.Invalid("coach_id", "staff member %d does not exist", *id)
	}
	return nil
}

func apply(e *Extra, in ExtraInput) {
	e.Name = strings.TrimSpace(in.Name)
	e.Description = in.Description
	e.Category = strings.TrimSpace(in.Category)
	e.CoachID = in.CoachID
	e.Coach = nil
	e.Schedule = in.Schedule
	e.Location = in.Location
	e.MembersCount = in.MembersCount
	e.MaxMembers = in.MaxMembers
	e.ImageURL = in.ImageURL
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}

	e.Achievements = pq.StringArray{}
	for _, a := range in.Achievements {
		if a = strings.TrimSpace(a); a != "" {
			e.Achievements = append(e.Achievements, a)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
