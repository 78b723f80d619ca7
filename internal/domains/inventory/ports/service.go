package ports

import (
	"context"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/inventory/domain"
)

// RecordChangeInput carries the payload for logging a needle replacement.
type RecordChangeInput struct {
	Loom     string
	Size     string
	Quantity int
	Employee string
	Date     time.Time
}

// Service exposes inventory bounded context use cases to adapters.
type Service interface {
	RecordChange(ctx context.Context, input RecordChangeInput) (*domain.NeedleChange, error)
	ListChanges(ctx context.Context, loom string) ([]*domain.NeedleChange, error)
	DeleteChange(ctx context.Context, id int64) error
}
