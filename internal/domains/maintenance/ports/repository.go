package ports

import (
	"context"
	"errors"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
)

var ErrNotFound = errors.New("maintenance record not found")

// RequestFilter narrows request listings. Zero values match everything.
type RequestFilter struct {
	AssetID int64
	Status  domain.RequestStatus
	Sector  string
}

type RequestRepository interface {
	Save(ctx context.Context, request *domain.Request) (*domain.Request, error)
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]*domain.Request, error)
}

type ScheduleRepository interface {
	Save(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	List(ctx context.Context, assetID int64) ([]*domain.Schedule, error)
	// ListDue returns active schedules whose next due date is at or before asOf.
	ListDue(ctx context.Context, asOf time.Time) ([]*domain.Schedule, error)
}
