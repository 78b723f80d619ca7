package ports

import (
	"context"
	"errors"

	"github.com/azaconnect/maintenance-api/internal/domains/inventory/domain"
)

var ErrNotFound = errors.New("needle change not found")

// Repository persists the needle replacement log. Listings come back
// newest first, matching how the floor reviews them.
type Repository interface {
	Save(ctx context.Context, change *domain.NeedleChange) (*domain.NeedleChange, error)
	List(ctx context.Context, loom string) ([]*domain.NeedleChange, error)
	Delete(ctx context.Context, id int64) error
}
