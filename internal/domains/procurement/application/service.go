package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
)

// maxConflictRetries bounds the optimistic-concurrency retry loop. A
// validation failure is never retried; only a stale-version conflict is.
const maxConflictRetries = 3

// Service orchestrates the procurement use cases: placing orders, walking
// items through approval, purchase, and receipt, and keeping the parent
// order status reconciled after every item mutation.
type Service struct {
	repo     ports.Repository
	notifier ports.Notifier
	now      func() time.Time
}

type Option func(*Service)

// WithNotifier wires the channel used to alert purchasing about new orders.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, notifier: ports.NoopNotifier, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates and persists a new order with all items pending,
// then alerts purchasing. Notification failures never fail the order.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	items := make([]*domain.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		item, err := domain.NewOrderItem(0, line.Code, line.Description, line.Unit, line.Quantity)
		if err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}
	order, err := domain.NewOrder(input.Number, input.RequestedBy, input.Sector, items)
	if err != nil {
		return nil, mapError(err)
	}
	order.CreatedAt = s.now()
	saved, err := s.repo.SaveOrder(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	// The notifier adapter logs its own failures.
	_ = s.notifier.OrderPlaced(ctx, saved)
	return saved, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *Service) GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	return s.repo.GetItem(ctx, itemID)
}

// CancelOrder forces the order and every non-terminal item to canceled.
// This is an explicit override: the reconciliation cascade is bypassed and
// the order stops reconciling afterwards. The write is one atomic commit,
// so a concurrent item mutation retries the whole cancel instead of
// leaving some items canceled and the order untouched.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		order, err := s.repo.GetOrder(ctx, orderID)
		if err != nil {
			return nil, mapError(err)
		}
		if err := order.Cancel(); err != nil {
			return nil, mapError(err)
		}
		saved, err := s.repo.SaveCanceledOrder(ctx, order)
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, mapError(err)
		}
		return saved, nil
	}
	return nil, ErrRetriesExhausted
}

// RefreshOrderStatus reloads the item statuses, derives the order status,
// persists, and returns it. Idempotent: with no intervening item change it
// rewrites the same value. An order whose items are gone is left untouched.
func (s *Service) RefreshOrderStatus(ctx context.Context, orderID int64) (domain.OrderStatus, error) {
	statuses, err := s.repo.ListItemStatuses(ctx, orderID)
	if err != nil {
		return "", mapError(err)
	}
	if len(statuses) == 0 {
		order, err := s.repo.GetOrder(ctx, orderID)
		if err != nil {
			return "", mapError(err)
		}
		return order.Status, nil
	}
	status, err := domain.Reconcile(statuses)
	if err != nil {
		return "", mapError(err)
	}
	if err := s.repo.SaveOrderStatus(ctx, orderID, status); err != nil {
		return "", mapError(err)
	}
	return status, nil
}

// ApproveItem authorizes a pending item; a nil quantity approves the full
// ordered quantity.
func (s *Service) ApproveItem(ctx context.Context, itemID int64, quantity *decimal.Decimal) (*domain.OrderItem, error) {
	return s.mutateAndReconcile(ctx, itemID, func(it *domain.OrderItem) (*domain.ReceiptEvent, error) {
		return nil, it.Approve(quantity)
	})
}

func (s *Service) RejectItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	return s.mutateAndReconcile(ctx, itemID, func(it *domain.OrderItem) (*domain.ReceiptEvent, error) {
		return nil, it.Reject()
	})
}

func (s *Service) PurchaseItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	return s.mutateAndReconcile(ctx, itemID, func(it *domain.OrderItem) (*domain.ReceiptEvent, error) {
		return nil, it.MarkPurchased()
	})
}

func (s *Service) CancelItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	return s.mutateAndReconcile(ctx, itemID, func(it *domain.OrderItem) (*domain.ReceiptEvent, error) {
		return nil, it.Cancel()
	})
}

// ReceiveItem records one delivery against a purchased item and appends it
// to the receipt history in the same commit.
func (s *Service) ReceiveItem(ctx context.Context, input ports.ReceiveItemInput) (*domain.OrderItem, error) {
	return s.mutateAndReconcile(ctx, input.ItemID, func(it *domain.OrderItem) (*domain.ReceiptEvent, error) {
		return it.Receive(input.Quantity, input.Condition, input.Note, s.now())
	})
}

// UndoReceive re-opens a fully received item: quantity back to zero, the
// whole receipt history discarded, status back to purchased.
func (s *Service) UndoReceive(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	return s.mutateAndReconcile(ctx, itemID, func(it *domain.OrderItem) (*domain.ReceiptEvent, error) {
		return nil, it.UndoReceive()
	})
}

func (s *Service) EditApprovedQuantity(ctx context.Context, itemID int64, quantity decimal.Decimal) (*domain.OrderItem, error) {
	return s.mutateAndReconcile(ctx, itemID, func(it *domain.OrderItem) (*domain.ReceiptEvent, error) {
		return nil, it.SetApprovedQuantity(quantity)
	})
}

func (s *Service) mutateAndReconcile(ctx context.Context, itemID int64, mutate func(*domain.OrderItem) (*domain.ReceiptEvent, error)) (*domain.OrderItem, error) {
	item, err := s.mutateItem(ctx, itemID, mutate)
	if err != nil {
		return nil, err
	}
	if _, err := s.RefreshOrderStatus(ctx, item.OrderID); err != nil {
		return nil, err
	}
	return item, nil
}

// mutateItem runs one read-validate-write cycle against an item, retrying
// only when the save hits a stale-version conflict. Validation errors
// reject the operation with the item untouched.
func (s *Service) mutateItem(ctx context.Context, itemID int64, mutate func(*domain.OrderItem) (*domain.ReceiptEvent, error)) (*domain.OrderItem, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		item, err := s.repo.GetItem(ctx, itemID)
		if err != nil {
			return nil, mapError(err)
		}
		event, err := mutate(item)
		if err != nil {
			return nil, mapError(err)
		}
		saved, err := s.repo.SaveItem(ctx, item, event)
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, mapError(err)
		}
		return saved, nil
	}
	return nil, ErrRetriesExhausted
}

var _ ports.Service = (*Service)(nil)
