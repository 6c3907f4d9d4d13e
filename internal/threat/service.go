package threat

import (
	"context"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Store is the read/write surface the service needs from persistence
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]Threat, int, error)
	GetByID(ctx context.Context, id int64) (*Threat, error)
	Stats(ctx context.Context) (*Stats, error)
	Categories(ctx context.Context) ([]string, error)
}

// Service serves the dashboard's threat queries
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns one page of threats. Out-of-range paging values are clamped.
func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	filter = normalize(filter)

	threats, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Page{
		Threats:    threats,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Threat, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

func normalize(filter ListFilter) ListFilter {
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	switch {
	case filter.Limit < 1:
		filter.Limit = DefaultLimit
	case filter.Limit > MaxLimit:
		filter.Limit = MaxLimit
	}
	return filter
}
