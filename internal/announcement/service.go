package announcement

import (
	"context"
	"strings"
	"time"

	"school-cms-api/internal/aggregate"
	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

type AnnouncementService struct {
	DB    *gorm.DB
	Repo  *repository.Repository[Announcement]
	Clock repository.Clock
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	s := &AnnouncementService{DB: db}
	s.Repo = repository.New[Announcement](db, scope{now: s.Now}, includes)
	return s
}

func (s *AnnouncementService) Now() time.Time {
	return s.Clock.Now().UTC()
}

func (s *AnnouncementService) List(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	at := s.Now()

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

	return &Listing{Items: items, Page: page, Summary: Summarize(all, at), At: at}, nil
}

func (s *AnnouncementService) ListPublic(ctx context.Context, params jsonapi.QueryParams) (*Listing, error) {
	return s.List(ctx, params.WithFilter("visibility", "public"))
}

// Summarize partitions the announcements by state at now. Every announcement lands in
// exactly one of active, expired and scheduled.
func Summarize(all []Announcement, now time.Time) Summary {
	sum := Summary{Total: len(all)}
	for _, a := range all {
		switch a.State(now) {
		case StateExpired:
			sum.Expired++
		case StateScheduled:
			sum.Scheduled++
		default:
			sum.Active++
		}
		if a.IsPinned && a.State(now) != StateExpired {
			sum.Pinned++
		}
	}
	sum.ByPriority = aggregate.CountBy(all, func(a Announcement) string { return a.Priority }, PriorityNormal)
	sum.ByCategory = aggregate.CountBy(all, func(a Announcement) string {
		if a.Category == nil {
			return ""
		}
		return a.Category.Name
	}, "Uncategorized")
	return sum
}

// Show returns a published announcement by slug; expired ones stay readable.
func (s *AnnouncementService) Show(ctx context.Context, slug string, includes []string) (*Announcement, error) {
	return s.Repo.FindWhere(ctx, includes, "slug = ? AND published_at IS NOT NULL AND published_at <= ?", slug, s.Now())
}

func (s *AnnouncementService) GetByID(ctx context.Context, id uint, includes []string) (*Announcement, error) {
	return s.Repo.FindByID(ctx, id, includes...)
}

func (s *AnnouncementService) Create(ctx context.Context, authorID uint, in AnnouncementInput) (*Announcement, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	slug, err := s.Repo.ResolveSlug(ctx, deref(in.Slug), in.Title, 0)
	if err != nil {
		return nil, err
	}

	a := Announcement{Slug: slug}
	if authorID != 0 {
		a.AuthorID = &authorID
	}
	apply(&a, in)

	if err := s.Repo.Create(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AnnouncementService) Update(ctx context.Context, id uint, in AnnouncementInput) (*Announcement, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != a.Slug {
		slug, err := s.Repo.ResolveSlug(ctx, *in.Slug, in.Title, id)
		if err != nil {
			return nil, err
		}
		a.Slug = slug
	}
	apply(a, in)

	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

func validate(in AnnouncementInput) error {
	if in.PublishedAt != nil && in.ExpiresAt != nil && !in.ExpiresAt.After(*in.PublishedAt) {
		return apperr.Invalid("expires_at", "must be after published_at")
	}
	return nil
}

func (s *AnnouncementService) checkCategory(ctx context.Context, id *uint) error {
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

func apply(a *Announcement, in AnnouncementInput) {
	a.Title = strings.TrimSpace(in.Title)
	a.Content = in.Content
	a.Priority = in.Priority
	if a.Priority == "" {
		a.Priority = PriorityNormal
	}
	a.IsPinned = in.IsPinned
	a.PublishedAt = utc(in.PublishedAt)
	a.ExpiresAt = utc(in.ExpiresAt)
	a.Attachment = in.Attachment
	a.CategoryID = in.CategoryID
	a.Category = nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
