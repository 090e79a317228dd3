package gallery

import (
	"context"
	"strings"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

type GalleryService struct {
	DB   *gorm.DB
	Repo *repository.Repository[Gallery]
}

func NewGalleryService(db *gorm.DB) *GalleryService {
	return &GalleryService{DB: db, Repo: repository.New[Gallery](db, scope{}, includes)}
}

// withImages makes sure images are loaded, since counts and cover fallback depend on them.
func withImages(include []string) []string {
	for _, inc := range include {
		if inc == "images" {
			return include
		}
	}
	out := make([]string, 0, len(include)+1)
	out = append(out, include...)
	return append(out, "images")
}

func (s *GalleryService) List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	requested := params.Includes("images")
	params.Include = withImages(params.Include)

	items, page, err := s.Repo.Paginate(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range items {
		sortImages(items[i].Images)
	}

	summaryParams := params
	summaryParams.Include = []string{"images"}
	all, err := s.Repo.All(ctx, summaryParams)
	if err != nil {
		return nil, err
	}

	return &Listing{Items: items, Page: page, Summary: Summarize(all), IncludeImages: requested}, nil
}

func (s *GalleryService) ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	return s.List(ctx, params.WithFilter("visibility", "public"))
}

func Summarize(all []Gallery) Summary {
	sum := Summary{
		Total:     len(all),
		Published: aggregate.Count(all, func(g Gallery) bool { return g.IsPublished }),
	}
	for _, g := range all {
		sum.Images += len(g.Images)
	}
	return sum
}

func (s *GalleryService) Show(ctx context.Context, slug string, includes []string) (*Gallery, error) {
	g, err := s.Repo.FindWhere(ctx, withImages(includes), "slug = ? AND is_published = ?", slug, true)
	if err != nil {
		return nil, err
	}
	sortImages(g.Images)
	return g, nil
}

func (s *GalleryService) GetByID(ctx context.Context, id uint, includes []string) (*Gallery, error) {
	g, err := s.Repo.FindByID(ctx, id, withImages(includes)...)
	if err != nil {
		return nil, err
	}
	sortImages(g.Images)
	return g, nil
}

func (s *GalleryService) Create(ctx context.Context, in GalleryInput) (*Gallery, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	slug, err := s.Repo.ResolveSlug(ctx, deref(in.Slug), in.Title, 0)
	if err != nil {
		return nil, err
	}

	g := Gallery{Slug: slug}
	apply(&g, in)
	if err := s.Repo.Create(ctx, &g); err != nil {
		return nil, err
	}
	g.Images = []GalleryImage{}
	return &g, nil
}

func (s *GalleryService) Update(ctx context.Context, id uint, in GalleryInput) (*Gallery, error) {
	g, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != g.Slug {
		slug, err := s.Repo.ResolveSlug(ctx, *in.Slug, in.Title, id)
		if err != nil {
			return nil, err
		}
		g.Slug = slug
	}
	apply(g, in)

	if err := s.Repo.Save(ctx, g); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id, nil)
}

func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

// AddImages appends images after the current last one unless a sort order is given.
func (s *GalleryService) AddImages(ctx context.Context, id uint, in ImagesInput) (*Gallery, error) {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&GalleryImage{}).
			Where("gallery_id = ?", id).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&next).Error; err != nil {
			return err
		}

		rows := make([]GalleryImage, 0, len(in.Images))
		for _, img := range in.Images {
			order := next + 1
			if img.SortOrder != nil {
				order = *img.SortOrder
			}
			if order > next {
				next = order
			}
			rows = append(rows, GalleryImage{
				GalleryID: id,
				URL:       strings.TrimSpace(img.URL),
				Caption:   img.Caption,
				SortOrder: order,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id, nil)
}

func (s *GalleryService) RemoveImage(ctx context.Context, id, imageID uint) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND gallery_id = ?", imageID, id).
		Delete(&GalleryImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *GalleryService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := s.DB.WithContext(ctx).Table("categories").
		Where("id = ? AND deleted_at IS NULL", *id).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.Invalid("category_id", "category %d does not exist", *id)
	}
	return nil
}

func apply(g *Gallery, in GalleryInput) {
	g.Title = strings.TrimSpace(in.Title)
	g.Description = in.Description
	g.CategoryID = in.CategoryID
	g.Category = nil
	g.CoverURL = in.CoverURL
	if in.EventDate != nil {
		t := in.EventDate.UTC()
		g.EventDate = &t
	} else {
		g.EventDate = nil
	}
	g.IsPublished = in.IsPublished
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
