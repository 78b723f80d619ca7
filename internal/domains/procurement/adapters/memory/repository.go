package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory procurement persistence adapter. It enforces
// the same version discipline as the Postgres adapter so the optimistic
// retry loop behaves identically in both.
type Repository struct {
	mu          sync.RWMutex
	orders      map[int64]*domain.Order
	items       map[int64]*domain.OrderItem
	nextOrderID int64
	nextItemID  int64
}

func NewRepository() *Repository {
	return &Repository{
		orders: map[int64]*domain.Order{},
		items:  map[int64]*domain.OrderItem{},
	}
}

func (r *Repository) SaveOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := order.Clone()
	if clone.ID == 0 {
		r.nextOrderID++
		clone.ID = r.nextOrderID
	} else if clone.ID > r.nextOrderID {
		r.nextOrderID = clone.ID
	}
	for _, item := range clone.Items {
		if item.ID == 0 {
			r.nextItemID++
			item.ID = r.nextItemID
		} else if item.ID > r.nextItemID {
			r.nextItemID = item.ID
		}
		item.OrderID = clone.ID
		r.items[item.ID] = item.Clone()
	}
	r.orders[clone.ID] = clone
	return r.assemble(clone.ID), nil
}

func (r *Repository) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.orders[id]; !ok {
		return nil, ports.ErrNotFound
	}
	return r.assemble(id), nil
}

func (r *Repository) ListOrders(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	list := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		list = append(list, r.assemble(id))
	}
	return list, nil
}

func (r *Repository) GetItem(_ context.Context, id int64) (*domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *Repository) SaveItem(_ context.Context, item *domain.OrderItem, _ *domain.ReceiptEvent) (*domain.OrderItem, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[item.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if current.Version != item.Version {
		return nil, ports.ErrConflict
	}
	clone := item.Clone()
	clone.Version++
	r.items[item.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) SaveCanceledOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	// Validate every item version before touching anything so the commit
	// is all-or-nothing, same as the transactional Postgres adapter.
	for _, item := range order.Items {
		current, ok := r.items[item.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		if current.Version != item.Version {
			return nil, ports.ErrConflict
		}
	}
	for _, item := range order.Items {
		clone := item.Clone()
		clone.Version++
		r.items[item.ID] = clone
	}
	stored.Status = order.Status
	return r.assemble(order.ID), nil
}

func (r *Repository) ListItemStatuses(_ context.Context, orderID int64) ([]domain.ItemStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var statuses []domain.ItemStatus
	for _, item := range r.itemsOf(orderID) {
		statuses = append(statuses, item.Status)
	}
	return statuses, nil
}

func (r *Repository) SaveOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	order.Status = status
	return nil
}

// assemble builds an order snapshot with its current items. Callers must
// hold at least a read lock.
func (r *Repository) assemble(orderID int64) *domain.Order {
	order := r.orders[orderID].Clone()
	order.Items = nil
	for _, item := range r.itemsOf(orderID) {
		order.Items = append(order.Items, item.Clone())
	}
	return order
}

func (r *Repository) itemsOf(orderID int64) []*domain.OrderItem {
	ids := make([]int64, 0)
	for id, item := range r.items {
		if item.OrderID == orderID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]*domain.OrderItem, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.items[id])
	}
	return result
}
