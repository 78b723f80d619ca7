package application

import (
	"context"
	"errors"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
)

// Service exposes asset bounded context use cases, covering both the
// machines themselves and the sector registry they are grouped by.
type Service struct {
	repo    ports.Repository
	sectors ports.SectorRepository
}

func NewService(repo ports.Repository, sectors ports.SectorRepository) *Service {
	return &Service{repo: repo, sectors: sectors}
}

func (s *Service) CreateAsset(ctx context.Context, asset *domain.Asset) (*domain.Asset, error) {
	if asset == nil {
		return nil, errors.New("asset is nil")
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, asset)
}

func (s *Service) GetAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAssets(ctx context.Context, filter ports.ListFilter) ([]*domain.Asset, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) UpdateAsset(ctx context.Context, id int64, updated *domain.Asset) (*domain.Asset, error) {
	if updated == nil {
		return nil, errors.New("asset is nil")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, updated)
}

func (s *Service) ChangeStatus(ctx context.Context, id int64, status domain.Status) (*domain.Asset, error) {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch status {
	case domain.StatusMaintenance:
		err = asset.SendToMaintenance()
	case domain.StatusActive:
		err = asset.Reactivate()
	case domain.StatusRetired:
		asset.Retire()
	default:
		err = domain.ErrInvalidStatus
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, asset)
}

func (s *Service) DeleteAsset(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) CreateSector(ctx context.Context, name, description string) (*domain.Sector, error) {
	sector, err := domain.NewSector(name, description)
	if err != nil {
		return nil, err
	}
	return s.sectors.SaveSector(ctx, sector)
}

func (s *Service) ListSectors(ctx context.Context) ([]*domain.Sector, error) {
	return s.sectors.ListSectors(ctx)
}

func (s *Service) UpdateSector(ctx context.Context, id int64, name, description string, active bool) (*domain.Sector, error) {
	sector, err := s.sectors.GetSector(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sector.Update(name, description, active); err != nil {
		return nil, err
	}
	return s.sectors.SaveSector(ctx, sector)
}

func (s *Service) DeleteSector(ctx context.Context, id int64) error {
	return s.sectors.DeleteSector(ctx, id)
}

var _ ports.Service = (*Service)(nil)
