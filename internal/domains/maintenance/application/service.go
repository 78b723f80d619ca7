package application

import (
	"context"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
)

// Service exposes maintenance bounded context use cases.
type Service struct {
	requests  ports.RequestRepository
	schedules ports.ScheduleRepository
	notifier  ports.Notifier
	now       func() time.Time
}

type Option func(*Service)

// WithNotifier injects the channel used for maintenance alerts.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(requests ports.RequestRepository, schedules ports.ScheduleRepository, opts ...Option) *Service {
	s := &Service{
		requests:  requests,
		schedules: schedules,
		notifier:  ports.NoopNotifier,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreateRequest(ctx context.Context, input ports.CreateRequestInput) (*domain.Request, error) {
	request, err := domain.NewRequest(input.AssetID, input.Title, input.Description, input.RequestedBy, input.Sector, input.Priority)
	if err != nil {
		return nil, err
	}
	request.AttachPhotos(input.PhotoURLs)
	request.CreatedAt = s.now()
	return s.requests.Save(ctx, request)
}

func (s *Service) GetRequest(ctx context.Context, id int64) (*domain.Request, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *Service) ListRequests(ctx context.Context, filter ports.RequestFilter) ([]*domain.Request, error) {
	return s.requests.List(ctx, filter)
}

func (s *Service) AssignRequest(ctx context.Context, id int64, technician string) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := request.Assign(technician); err != nil {
		return nil, err
	}
	return s.requests.Save(ctx, request)
}

func (s *Service) CompleteRequest(ctx context.Context, id int64, resolution string) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := request.Complete(resolution, s.now()); err != nil {
		return nil, err
	}
	saved, err := s.requests.Save(ctx, request)
	if err != nil {
		return nil, err
	}
	// The notifier adapter logs its own failures.
	_ = s.notifier.RequestCompleted(ctx, saved)
	return saved, nil
}

func (s *Service) CancelRequest(ctx context.Context, id int64) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := request.Cancel(); err != nil {
		return nil, err
	}
	return s.requests.Save(ctx, request)
}

func (s *Service) CreateSchedule(ctx context.Context, input ports.CreateScheduleInput) (*domain.Schedule, error) {
	firstDue := input.FirstDue
	if firstDue.IsZero() {
		firstDue = s.now().AddDate(0, 0, input.IntervalDays)
	}
	schedule, err := domain.NewSchedule(input.AssetID, input.Title, input.Description, input.IntervalDays, firstDue)
	if err != nil {
		return nil, err
	}
	schedule.SetChecklist(input.Checklist)
	return s.schedules.Save(ctx, schedule)
}

func (s *Service) GetSchedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	return s.schedules.GetByID(ctx, id)
}

func (s *Service) ListSchedules(ctx context.Context, assetID int64) ([]*domain.Schedule, error) {
	return s.schedules.List(ctx, assetID)
}

func (s *Service) CompleteSchedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := schedule.MarkCompleted(s.now()); err != nil {
		return nil, err
	}
	return s.schedules.Save(ctx, schedule)
}

// CheckScheduleItem ticks or unticks one checklist step of a schedule.
func (s *Service) CheckScheduleItem(ctx context.Context, id int64, position int, done bool) (*domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := schedule.CheckItem(position, done); err != nil {
		return nil, err
	}
	return s.schedules.Save(ctx, schedule)
}

func (s *Service) DeactivateSchedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule.Deactivate()
	return s.schedules.Save(ctx, schedule)
}

// DueSchedules lists schedules needing attention and alerts for each one.
func (s *Service) DueSchedules(ctx context.Context, asOf time.Time) ([]*domain.Schedule, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	due, err := s.schedules.ListDue(ctx, asOf)
	if err != nil {
		return nil, err
	}
	for _, schedule := range due {
		_ = s.notifier.ScheduleDue(ctx, schedule)
	}
	return due, nil
}

var _ ports.Service = (*Service)(nil)
