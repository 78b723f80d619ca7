package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory notification persistence adapter.
type Repository struct {
	mu            sync.RWMutex
	notifications map[int64]*domain.Notification
	nextID        int64
}

func NewRepository() *Repository {
	return &Repository{notifications: map[int64]*domain.Notification{}}
}

func (r *Repository) Save(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if notification == nil {
		return nil, errors.New("notification is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *notification
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.notifications[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *notification
	return &clone, nil
}

func (r *Repository) ListByRecipient(_ context.Context, recipient string, unreadOnly bool) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.notifications))
	for id := range r.notifications {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var list []*domain.Notification
	for _, id := range ids {
		notification := r.notifications[id]
		if notification.Recipient != recipient {
			continue
		}
		if unreadOnly && notification.Read {
			continue
		}
		clone := *notification
		list = append(list, &clone)
	}
	return list, nil
}
