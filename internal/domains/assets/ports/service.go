package ports

import (
	"context"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
)

// Service exposes asset bounded context use cases to adapters.
type Service interface {
	CreateAsset(ctx context.Context, asset *domain.Asset) (*domain.Asset, error)
	GetAsset(ctx context.Context, id int64) (*domain.Asset, error)
	ListAssets(ctx context.Context, filter ListFilter) ([]*domain.Asset, error)
	UpdateAsset(ctx context.Context, id int64, updated *domain.Asset) (*domain.Asset, error)
	ChangeStatus(ctx context.Context, id int64, status domain.Status) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error

	CreateSector(ctx context.Context, name, description string) (*domain.Sector, error)
	ListSectors(ctx context.Context) ([]*domain.Sector, error)
	UpdateSector(ctx context.Context, id int64, name, description string, active bool) (*domain.Sector, error)
	DeleteSector(ctx context.Context, id int64) error
}
