package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/azaconnect/maintenance-api/internal/domains/inventory/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory needle log adapter.
type Repository struct {
	mu      sync.RWMutex
	changes map[int64]*domain.NeedleChange
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{changes: map[int64]*domain.NeedleChange{}}
}

func (r *Repository) Save(_ context.Context, change *domain.NeedleChange) (*domain.NeedleChange, error) {
	if change == nil {
		return nil, errors.New("change is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := change.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.changes[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) List(_ context.Context, loom string) ([]*domain.NeedleChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.NeedleChange
	for _, change := range r.changes {
		if loom != "" && change.Loom != loom {
			continue
		}
		list = append(list, change.Clone())
	}
	// Newest first, ties broken by ID so the order is stable.
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.changes[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.changes, id)
	return nil
}
