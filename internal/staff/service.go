package staff

import (
	"context"
	"strings"
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

type StaffService struct {
	DB    *gorm.DB
	Repo  *repository.Repository[Staff]
	Clock repository.Clock
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{DB: db, Repo: repository.New[Staff](db, scope{}, nil)}
}

func (s *StaffService) Now() time.Time {
	return s.Clock.Now().UTC()
}

func (s *StaffService) List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	at := s.Now()

	items, page, err := s.Repo.Paginate(ctx, params)
	if err != nil {
		return nil, err
	}
	all, err := s.Repo.All(ctx, params)
	if err != nil {
		return nil, err
	}
	return &Listing{Items: items, Page: page, Summary: Summarize(all, at), At: at}, nil
}

func (s *StaffService) ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	return s.List(ctx, params.WithFilter("visibility", "public"))
}

// Summarize builds the staff collection meta. Members without a join date are left out of
// the experience figures.
func Summarize(all []Staff, now time.Time) Summary {
	sum := Summary{
		Total:           len(all),
		Active:          aggregate.Count(all, func(s Staff) bool { return s.IsActive }),
		ByDepartment:    aggregate.CountBy(all, func(s Staff) string { return s.Department }, "General"),
		MostExperienced: []Veteran{},
	}
	sum.Inactive = sum.Total - sum.Active

	known := make([]Veteran, 0, len(all))
	for _, m := range all {
		if years := m.YearsOfExperience(now); years != nil {
			known = append(known, Veteran{ID: m.ID, Name: m.Name, Slug: m.Slug, Years: *years})
		}
	}
	if len(known) > 0 {
		total := aggregate.Sum(known, func(v Veteran) float64 { return float64(v.Years) })
		sum.AverageExperience = aggregate.Round(total/float64(len(known)), 1)
	}
	sum.MostExperienced = aggregate.TopN(known, 5, func(a, b Veteran) bool {
		if a.Years != b.Years {
			return a.Years > b.Years
		}
		return a.Name < b.Name
	})
	return sum
}

func (s *StaffService) Show(ctx context.Context, slug string) (*Staff, error) {
	return s.Repo.FindWhere(ctx, nil, "slug = ? AND is_active = ?", slug, true)
}

func (s *StaffService) GetByID(ctx context.Context, id uint) (*Staff, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *StaffService) Create(ctx context.Context, in StaffInput) (*Staff, error) {
	return s.create(ctx, s.Repo, in)
}

func (s *StaffService) create(ctx context.Context, repo *repository.Repository[Staff], in StaffInput) (*Staff, error) {
	slug, err := repo.ResolveSlug(ctx, deref(in.Slug), in.Name, 0)
	if err != nil {
		return nil, err
	}

	m := Staff{Slug: slug, IsActive: true}
	apply(&m, in)
	if err := repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *StaffService) Update(ctx context.Context, id uint, in StaffInput) (*Staff, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != m.Slug {
		slug, err := s.Repo.ResolveSlug(ctx, *in.Slug, in.Name, id)
		if err != nil {
			return nil, err
		}
		m.Slug = slug
	}
	apply(m, in)

	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *StaffService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

func apply(m *Staff, in StaffInput) {
	m.Name = strings.TrimSpace(in.Name)
	m.EmployeeNumber = blankToNil(in.EmployeeNumber)
	m.Position = strings.TrimSpace(in.Position)
	m.Department = strings.TrimSpace(in.Department)
	m.Subject = blankToNil(in.Subject)
	m.Email = blankToNil(in.Email)
	m.Phone = blankToNil(in.Phone)
	m.PhotoURL = blankToNil(in.PhotoURL)
	m.Bio = in.Bio
	m.Education = blankToNil(in.Education)
	m.JoinedAt = nil
	if in.JoinedAt != nil {
		t := in.JoinedAt.UTC()
		m.JoinedAt = &t
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.SortOrder = in.SortOrder
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
