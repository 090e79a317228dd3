package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/apperr"
	"school-cms-api/internal/assistant"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const excerptWords = 40

type PostService struct {
	DB        *gorm.DB
	Repo      *repository.Repository[Post]
	Generator assistant.Generator
	Now       repository.Clock
}

func NewPostService(db *gorm.DB, gen assistant.Generator) *PostService {
	s := &PostService{DB: db, Generator: gen}
	s.Repo = repository.New[Post](db, scope{now: func() time.Time { return s.Now.Now() }}, includes)
	return s
}

func (s *PostService) List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	items, page, err := s.Repo.Paginate(ctx, params)
	if err != nil {
		return nil, err
	}

	summaryParams := params
	summaryParams.Include = []string{"category"}
	all, err := s.Repo.All(ctx, summaryParams)
	if err != nil {
		return nil, err
	}

	return &Listing{Items: items, Page: page, Summary: Summarize(all)}, nil
}

func (s *PostService) ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	return s.List(ctx, params.WithFilter("visibility", "public"))
}

// Summarize computes the collection meta over every filtered post.
func Summarize(all []Post) Summary {
	sum := Summary{
		Total:     len(all),
		Published: aggregate.Count(all, func(p Post) bool { return p.Status == StatusPublished }),
		Draft:     aggregate.Count(all, func(p Post) bool { return p.Status == StatusDraft }),
		Archived:  aggregate.Count(all, func(p Post) bool { return p.Status == StatusArchived }),
		Featured:  aggregate.Count(all, func(p Post) bool { return p.IsFeatured }),
		ByCategory: aggregate.GroupBy(all,
			func(p Post) string {
				if p.Category == nil {
					return ""
				}
				return p.Category.Name
			},
			func(p Post) float64 { return float64(p.Views) },
			"Uncategorized",
		),
		Popular: []Popular{},
	}
	for _, p := range all {
		sum.TotalViews += p.Views
	}

	top := aggregate.TopN(all, 5, func(a, b Post) bool {
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		return a.Title < b.Title
	})
	for _, p := range top {
		sum.Popular = append(sum.Popular, Popular{ID: p.ID, Title: p.Title, Slug: p.Slug, Views: p.Views})
	}
	return sum
}

// Show returns a visible post by slug and counts the view.
func (s *PostService) Show(ctx context.Context, slug string, includes []string) (*Post, error) {
	p, err := s.Repo.FindWhere(ctx, includes, "slug = ? AND status = ? AND published_at IS NOT NULL AND published_at <= ?",
		slug, StatusPublished, s.Now.Now())
	if err != nil {
		return nil, err
	}

	res := s.DB.WithContext(ctx).Model(&Post{}).
		Where("id = ?", p.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	p.Views++
	return p, nil
}

func (s *PostService) GetByID(ctx context.Context, id uint, includes []string) (*Post, error) {
	return s.Repo.FindByID(ctx, id, includes...)
}

func (s *PostService) Create(ctx context.Context, authorID uint, in PostInput) (*Post, error) {
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	slug, err := s.Repo.ResolveSlug(ctx, deref(in.Slug), in.Title, 0)
	if err != nil {
		return nil, err
	}

	p := Post{Slug: slug}
	if authorID != 0 {
		p.AuthorID = &authorID
	}
	s.apply(&p, in)

	if err := s.Repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostService) Update(ctx context.Context, id uint, in PostInput) (*Post, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != p.Slug {
		slug, err := s.Repo.ResolveSlug(ctx, *in.Slug, in.Title, id)
		if err != nil {
			return nil, err
		}
		p.Slug = slug
	}
	s.apply(p, in)

	if err := s.Repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

// GenerateExcerpt asks the assistant for a summary and stores it as the post's excerpt.
func (s *PostService) GenerateExcerpt(ctx context.Context, id uint) (*Post, error) {
	if s.Generator == nil {
		return nil, fmt.Errorf("%w: excerpt generation is not configured", apperr.ErrUnavailable)
	}

	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	text, err := s.Generator.GenerateExcerpt(ctx, p.Title, p.Content, excerptWords)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}

	if err := s.Repo.UpdateColumns(ctx, p.ID, map[string]any{"excerpt": text}); err != nil {
		return nil, err
	}
	p.Excerpt = &text
	return p, nil
}

func (s *PostService) checkCategory(ctx context.Context, id *uint) error {
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

// apply copies input onto p. A missing published_at keeps the stored one, and publishing
// without any date stamps the current time.
func (s *PostService) apply(p *Post, in PostInput) {
	p.Title = strings.TrimSpace(in.Title)
	p.Excerpt = in.Excerpt
	p.Content = in.Content
	p.CoverImage = in.CoverImage
	p.Status = in.Status
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if in.PublishedAt != nil {
		t := in.PublishedAt.UTC()
		p.PublishedAt = &t
	}
	if p.Status == StatusPublished && p.PublishedAt == nil {
		now := s.Now.Now().UTC()
		p.PublishedAt = &now
	}
	p.Tags = normalizeTags(in.Tags)
	p.IsFeatured = in.IsFeatured
	p.CategoryID = in.CategoryID
	p.Category = nil
}

func normalizeTags(tags []string) pq.StringArray {
	out := pq.StringArray{}
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
