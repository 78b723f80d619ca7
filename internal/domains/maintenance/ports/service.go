package ports

import (
	"context"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
)

// CreateRequestInput carries the payload for opening a corrective request.
type CreateRequestInput struct {
	AssetID     int64
	Title       string
	Description string
	Priority    domain.Priority
	RequestedBy string
	Sector      string
	PhotoURLs   []string
}

// CreateScheduleInput carries the payload for a preventive schedule.
// Checklist holds the inspection steps ticked off on each round.
type CreateScheduleInput struct {
	AssetID      int64
	Title        string
	Description  string
	IntervalDays int
	FirstDue     time.Time
	Checklist    []string
}

// Service exposes maintenance bounded context use cases to adapters.
type Service interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.Request, error)
	GetRequest(ctx context.Context, id int64) (*domain.Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]*domain.Request, error)
	AssignRequest(ctx context.Context, id int64, technician string) (*domain.Request, error)
	CompleteRequest(ctx context.Context, id int64, resolution string) (*domain.Request, error)
	CancelRequest(ctx context.Context, id int64) (*domain.Request, error)

	CreateSchedule(ctx context.Context, input CreateScheduleInput) (*domain.Schedule, error)
	GetSchedule(ctx context.Context, id int64) (*domain.Schedule, error)
	ListSchedules(ctx context.Context, assetID int64) ([]*domain.Schedule, error)
	CompleteSchedule(ctx context.Context, id int64) (*domain.Schedule, error)
	CheckScheduleItem(ctx context.Context, id int64, position int, done bool) (*domain.Schedule, error)
	DeactivateSchedule(ctx context.Context, id int64) (*domain.Schedule, error)
	DueSchedules(ctx context.Context, asOf time.Time) ([]*domain.Schedule, error)
}
