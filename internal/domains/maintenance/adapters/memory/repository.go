package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
)

var (
	_ ports.RequestRepository  = (*RequestRepository)(nil)
	_ ports.ScheduleRepository = (*ScheduleRepository)(nil)
)

// RequestRepository is an in-memory request persistence adapter.
type RequestRepository struct {
	mu       sync.RWMutex
	requests map[int64]*domain.Request
	nextID   int64
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{requests: map[int64]*domain.Request{}}
}

func (r *RequestRepository) Save(_ context.Context, request *domain.Request) (*domain.Request, error) {
	if request == nil {
		return nil, errors.New("request is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := request.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.requests[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *RequestRepository) GetByID(_ context.Context, id int64) (*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return request.Clone(), nil
}

func (r *RequestRepository) List(_ context.Context, filter ports.RequestFilter) ([]*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.requests))
	for id := range r.requests {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var list []*domain.Request
	for _, id := range ids {
		request := r.requests[id]
		if filter.AssetID != 0 && request.AssetID != filter.AssetID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		if filter.Sector != "" && request.Sector != filter.Sector {
			continue
		}
		list = append(list, request.Clone())
	}
	return list, nil
}

// ScheduleRepository is an in-memory schedule persistence adapter.
type ScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[int64]*domain.Schedule
	nextID    int64
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: map[int64]*domain.Schedule{}}
}

func (r *ScheduleRepository) Save(_ context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	if schedule == nil {
		return nil, errors.New("schedule is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := schedule.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.schedules[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return schedule.Clone(), nil
}

func (r *ScheduleRepository) List(_ context.Context, assetID int64) ([]*domain.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Schedule
	for _, id := range r.sortedIDs() {
		schedule := r.schedules[id]
		if assetID != 0 && schedule.AssetID != assetID {
			continue
		}
		list = append(list, schedule.Clone())
	}
	return list, nil
}

func (r *ScheduleRepository) ListDue(_ context.Context, asOf time.Time) ([]*domain.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Schedule
	for _, id := range r.sortedIDs() {
		schedule := r.schedules[id]
		if schedule.Due(asOf) {
			list = append(list, schedule.Clone())
		}
	}
	return list, nil
}

func (r *ScheduleRepository) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.schedules))
	for id := range r.schedules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
