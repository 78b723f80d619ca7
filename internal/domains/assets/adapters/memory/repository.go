package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory asset persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	assets map[int64]*domain.Asset
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{assets: map[int64]*domain.Asset{}}
}

func (r *Repository) Save(_ context.Context, asset *domain.Asset) (*domain.Asset, error) {
	if asset == nil {
		return nil, errors.New("asset is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *asset
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.assets[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *asset
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.assets, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.assets))
	for id := range r.assets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var list []*domain.Asset
	for _, id := range ids {
		asset := r.assets[id]
		if filter.Sector != "" && asset.Sector != filter.Sector {
			continue
		}
		if filter.Status != "" && asset.Status != filter.Status {
			continue
		}
		clone := *asset
		list = append(list, &clone)
	}
	return list, nil
}
