package ports

import (
	"context"
	"errors"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
)

var ErrNotFound = errors.New("asset not found")

// ListFilter narrows asset listings. Zero values match everything.
type ListFilter struct {
	Sector string
	Status domain.Status
}

type Repository interface {
	Save(ctx context.Context, asset *domain.Asset) (*domain.Asset, error)
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Asset, error)
}

// SectorRepository persists the sector registry.
type SectorRepository interface {
	SaveSector(ctx context.Context, sector *domain.Sector) (*domain.Sector, error)
	GetSector(ctx context.Context, id int64) (*domain.Sector, error)
	ListSectors(ctx context.Context) ([]*domain.Sector, error)
	DeleteSector(ctx context.Context, id int64) error
}
