package category

import (
	"context"
	"strings"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryService struct {
	DB   *gorm.DB
	Repo *repository.Repository[Category]
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db, Repo: repository.New[Category](db, scope{}, nil)}
}

func (s *CategoryService) List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	items, page, err := s.Repo.Paginate(ctx, params)
	if err != nil {
		return nil, err
	}

	all, err := s.Repo.All(ctx, params)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	counts, err := s.PostCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &Listing{
		Items:      items,
		Page:       page,
		Summary:    Summarize(all),
		PostCounts: counts,
	}, nil
}

func Summarize(all []Category) Summary {
	return Summary{
		Total:  len(all),
		ByType: aggregate.CountBy(all, func(c Category) string { return c.Type }, TypePost),
	}
}

// PostCounts counts live posts per category id.
func (s *CategoryService) PostCounts(ctx context.Context, ids []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		CategoryID uint
		N          int64
	}
	err := s.DB.WithContext(ctx).
		Table("posts").
		Select("category_id, COUNT(*) AS n").
		Where("deleted_at IS NULL AND category_id IN ?", ids).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.CategoryID] = r.N
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, slug string) (*Category, int64, error) {
	c, err := s.Repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, 0, err
	}
	return s.withCount(ctx, c)
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*Category, int64, error) {
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return s.withCount(ctx, c)
}

func (s *CategoryService) withCount(ctx context.Context, c *Category) (*Category, int64, error) {
	counts, err := s.PostCounts(ctx, []uint{c.ID})
	if err != nil {
		return nil, 0, err
	}
	return c, counts[c.ID], nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*Category, error) {
	slug, err := s.Repo.ResolveSlug(ctx, deref(in.Slug), in.Name, 0)
	if err != nil {
		return nil, err
	}

	c := Category{Slug: slug}
	apply(&c, in)
	if err := s.Repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update replaces the category's fields. The slug is kept unless a new one is given.
func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*Category, error) {
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != c.Slug {
		slug, err := s.Repo.ResolveSlug(ctx, *in.Slug, in.Name, id)
		if err != nil {
			return nil, err
		}
		c.Slug = slug
	}
	apply(c, in)

	if err := s.Repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

func apply(c *Category, in CategoryInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Type = in.Type
	if c.Type == "" {
		c.Type = TypePost
	}
	c.Description = in.Description
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Defaults are the categories a fresh install starts with.
var Defaults = []Category{
	{Name: "News", Slug: "news", Type: TypePost},
	{Name: "Achievements", Slug: "achievements", Type: TypePost},
	{Name: "Academic", Slug: "academic", Type: TypeAnnouncement},
	{Name: "Admissions", Slug: "admissions", Type: TypeAnnouncement},
	{Name: "School Events", Slug: "school-events", Type: TypeGallery},
}

// Seed inserts the default categories whose slug is still free.
func (s *CategoryService) Seed(ctx context.Context) (int, error) {
	rows := make([]Category, len(Defaults))
	copy(rows, Defaults)

	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
