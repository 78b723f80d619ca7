package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
)

var _ ports.SectorRepository = (*SectorRepository)(nil)

// SectorRepository is an in-memory sector registry adapter.
type SectorRepository struct {
	mu      sync.RWMutex
	sectors map[int64]*domain.Sector
	nextID  int64
}

func NewSectorRepository() *SectorRepository {
	return &SectorRepository{sectors: map[int64]*domain.Sector{}}
}

func (r *SectorRepository) SaveSector(_ context.Context, sector *domain.Sector) (*domain.Sector, error) {
	if sector == nil {
		return nil, errors.New("sector is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := sector.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.sectors[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *SectorRepository) GetSector(_ context.Context, id int64) (*domain.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sector, ok := r.sectors[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return sector.Clone(), nil
}

func (r *SectorRepository) ListSectors(_ context.Context) ([]*domain.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.sectors))
	for id := range r.sectors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	list := make([]*domain.Sector, 0, len(ids))
	for _, id := range ids {
		list = append(list, r.sectors[id].Clone())
	}
	return list, nil
}

func (r *SectorRepository) DeleteSector(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sectors[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.sectors, id)
	return nil
}
