package slider

import "context"

type SliderServiceAPI interface {
	ListActive(ctx context.Context) ([]Slider, error)
	List(ctx context.Context) ([]Slider, error)
	GetByID(ctx context.Context, id uint) (*Slider, error)
	Create(ctx context.Context, in SliderInput) (*Slider, error)
	Update(ctx context.Context, id uint, in SliderInput) (*Slider, error)
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, ids []uint) ([]Slider, error)
}

var _ SliderServiceAPI = (*SliderService)(nil)
