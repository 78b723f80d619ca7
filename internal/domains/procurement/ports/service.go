package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
)

// NewItemInput describes one line of a new order.
type NewItemInput struct {
	Code        string
	Description string
	Unit        string
	Quantity    decimal.Decimal
}

// CreateOrderInput carries everything needed to place a procurement order.
type CreateOrderInput struct {
	Number      string
	RequestedBy string
	Sector      string
	Items       []NewItemInput
}

// ReceiveItemInput records one delivery against an item.
type ReceiveItemInput struct {
	ItemID    int64
	Quantity  decimal.Decimal
	Condition domain.ReceiptCondition
	Note      string
}

// Service exposes the procurement use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	RefreshOrderStatus(ctx context.Context, orderID int64) (domain.OrderStatus, error)

	GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error)
	ApproveItem(ctx context.Context, itemID int64, quantity *decimal.Decimal) (*domain.OrderItem, error)
	RejectItem(ctx context.Context, itemID int64) (*domain.OrderItem, error)
	PurchaseItem(ctx context.Context, itemID int64) (*domain.OrderItem, error)
	CancelItem(ctx context.Context, itemID int64) (*domain.OrderItem, error)
	ReceiveItem(ctx context.Context, input ReceiveItemInput) (*domain.OrderItem, error)
	UndoReceive(ctx context.Context, itemID int64) (*domain.OrderItem, error)
	EditApprovedQuantity(ctx context.Context, itemID int64, quantity decimal.Decimal) (*domain.OrderItem, error)
}
