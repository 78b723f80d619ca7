package application

import (
	"context"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/inventory/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/inventory/ports"
)

// Service exposes the needle replacement log use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RecordChange logs a needle replacement. A missing date defaults to now.
func (s *Service) RecordChange(ctx context.Context, input ports.RecordChangeInput) (*domain.NeedleChange, error) {
	date := input.Date
	if date.IsZero() {
		date = s.now()
	}
	change, err := domain.NewNeedleChange(input.Loom, input.Size, input.Quantity, input.Employee, date)
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, change)
}

// ListChanges returns the log newest first, optionally scoped to one loom.
func (s *Service) ListChanges(ctx context.Context, loom string) ([]*domain.NeedleChange, error) {
	return s.repo.List(ctx, loom)
}

func (s *Service) DeleteChange(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
