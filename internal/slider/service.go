package slider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/repository"

	"gorm.io/gorm"
)

type SliderService struct {
	DB   *gorm.DB
	Repo *repository.Repository[Slider]
}

func NewSliderService(db *gorm.DB) *SliderService {
	return &SliderService{DB: db, Repo: repository.New[Slider](db, nil, nil)}
}

func ordered(q *gorm.DB) *gorm.DB {
	return q.Order("sort_order ASC").Order("id ASC")
}

func (s *SliderService) ListActive(ctx context.Context) ([]Slider, error) {
	out := []Slider{}
	err := s.DB.WithContext(ctx).Scopes(ordered).Where("is_active = ?", true).Find(&out).Error
	return out, err
}

func (s *SliderService) List(ctx context.Context) ([]Slider, error) {
	out := []Slider{}
	err := s.DB.WithContext(ctx).Scopes(ordered).Find(&out).Error
	return out, err
}

func (s *SliderService) GetByID(ctx context.Context, id uint) (*Slider, error) {
	return s.Repo.FindByID(ctx, id)
}

// Create appends the slider at the end unless a position is given.
func (s *SliderService) Create(ctx context.Context, in SliderInput) (*Slider, error) {
	m := Slider{IsActive: true}
	if in.SortOrder == nil {
		var last int
		if err := s.DB.WithContext(ctx).Model(&Slider{}).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&last).Error; err != nil {
			return nil, err
		}
		m.SortOrder = last + 1
	}
	apply(&m, in)

	if err := s.Repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SliderService) Update(ctx context.Context, id uint, in SliderInput) (*Slider, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(m, in)
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SliderService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}

// Reorder gives ids sort orders 1..n in the order given. Sliders not listed keep their
// positions. Nothing is written when any id is unknown.
func (s *SliderService) Reorder(ctx context.Context, ids []uint) ([]Slider, error) {
	seen := map[uint]bool{}
	for _, id := range ids {
		if seen[id] {
			return nil, apperr.Invalid("ids", "slider %d is listed twice", id)
		}
		seen[id] = true
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		for i, id := range ids {
			if err := repo.UpdateColumns(ctx, id, map[string]any{"sort_order": i + 1}); err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return fmt.Errorf("%w: slider %d", apperr.ErrNotFound, id)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func apply(m *Slider, in SliderInput) {
	m.Title = strings.TrimSpace(in.Title)
	m.Subtitle = in.Subtitle
	m.ImageURL = strings.TrimSpace(in.ImageURL)
	m.LinkURL = in.LinkURL
	m.ButtonText = in.ButtonText
	if in.SortOrder != nil {
		m.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}
