package ports

import (
	"context"
	"errors"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
)

var (
	ErrNotFound = errors.New("order or item not found")
	// ErrConflict signals a stale item version; callers retry the whole
	// read-validate-write cycle.
	ErrConflict = errors.New("item was modified concurrently")
)

// Repository persists procurement orders and their line items.
//
// SaveItem is the single atomic unit for item mutations: it writes the
// item's fields guarded by its version and, in the same commit, appends
// the given receipt event (receive) or deletes the persisted history when
// the item carries none (undo-receive). This guarantees two concurrent
// receives can never both pass the over-receipt check on stale state.
// SaveCanceledOrder persists a cancel override in one commit: every item of
// the given aggregate is written guarded by its loaded version, together
// with the order status. A stale item version fails the whole commit with
// ErrConflict so a cancellation can never land partially.
type Repository interface {
	SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetItem(ctx context.Context, id int64) (*domain.OrderItem, error)
	SaveItem(ctx context.Context, item *domain.OrderItem, appended *domain.ReceiptEvent) (*domain.OrderItem, error)
	SaveCanceledOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListItemStatuses(ctx context.Context, orderID int64) ([]domain.ItemStatus, error)
	SaveOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}
