package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyOrderNumber = errors.New("order number is required")
	ErrOrderClosed      = errors.New("order is already received or canceled")
)

// Order is a procurement request for accessories or spare parts, composed
// of one or more line items. Its status is a pure function of the items'
// statuses except after an explicit cancel.
type Order struct {
	ID          int64
	Number      string
	RequestedBy string
	Sector      string
	Status      OrderStatus
	Items       []*OrderItem
	CreatedAt   time.Time
}

// NewOrder validates and builds a pending order. An order without items is
// meaningless, so at least one item is required.
func NewOrder(number, requestedBy, sector string, items []*OrderItem) (*Order, error) {
	if strings.TrimSpace(number) == "" {
		return nil, ErrEmptyOrderNumber
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return &Order{
		Number:      strings.TrimSpace(number),
		RequestedBy: requestedBy,
		Sector:      sector,
		Status:      OrderPending,
		Items:       items,
	}, nil
}

// ItemStatuses collects the statuses of all items in insertion order.
func (o *Order) ItemStatuses() []ItemStatus {
	statuses := make([]ItemStatus, 0, len(o.Items))
	for _, item := range o.Items {
		statuses = append(statuses, item.Status)
	}
	return statuses
}

// Cancel forces the order and every non-terminal item to canceled,
// bypassing reconciliation. Orders that were fully received or already
// canceled cannot be canceled.
func (o *Order) Cancel() error {
	if o.Status == OrderReceived || o.Status == OrderCanceled {
		return ErrOrderClosed
	}
	for _, item := range o.Items {
		if !item.Status.Terminal() {
			item.Status = ItemCanceled
		}
	}
	o.Status = OrderCanceled
	return nil
}

// Clone returns a deep copy of the order and its items.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = make([]*OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		clone.Items = append(clone.Items, item.Clone())
	}
	return &clone
}
