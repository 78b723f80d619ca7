package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrQuantityTooHigh = errors.New("quantity exceeds the ordered quantity")
	ErrInvalidState    = errors.New("operation not allowed in the item's current status")
	ErrOverReceipt     = errors.New("received quantity would exceed the ordered quantity")
	ErrEmptyCode       = errors.New("item code is required")
)

// OrderItem is one line of a procurement order. It tracks its own
// approval, purchase, and receipt lifecycle; the parent order's status is
// derived from the statuses of all its items.
type OrderItem struct {
	ID               int64
	OrderID          int64
	Code             string
	Description      string
	Unit             string
	OrderedQuantity  decimal.Decimal
	ApprovedQuantity *decimal.Decimal
	ReceivedQuantity decimal.Decimal
	Status           ItemStatus
	Receipts         []ReceiptEvent

	// Version guards concurrent read-modify-write cycles in persistence.
	Version int64
}

// NewOrderItem validates and builds a pending line item. The ordered
// quantity is immutable after creation.
func NewOrderItem(orderID int64, code, description, unit string, ordered decimal.Decimal) (*OrderItem, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}
	if ordered.Sign() <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &OrderItem{
		OrderID:          orderID,
		Code:             strings.TrimSpace(code),
		Description:      description,
		Unit:             unit,
		OrderedQuantity:  ordered,
		ReceivedQuantity: decimal.Zero,
		Status:           ItemPending,
	}, nil
}

// Approve authorizes the item for purchase. A nil quantity approves the
// full ordered quantity.
func (i *OrderItem) Approve(quantity *decimal.Decimal) error {
	if i.Status != ItemPending {
		return ErrInvalidState
	}
	approved := i.OrderedQuantity
	if quantity != nil {
		if quantity.Sign() <= 0 {
			return ErrInvalidQuantity
		}
		if quantity.GreaterThan(i.OrderedQuantity) {
			return ErrQuantityTooHigh
		}
		approved = *quantity
	}
	i.ApprovedQuantity = &approved
	i.Status = ItemApproved
	return nil
}

// Reject declines a pending item.
func (i *OrderItem) Reject() error {
	if i.Status != ItemPending {
		return ErrInvalidState
	}
	i.Status = ItemRejected
	return nil
}

// MarkPurchased records that the approved item has been bought.
func (i *OrderItem) MarkPurchased() error {
	if i.Status != ItemApproved {
		return ErrInvalidState
	}
	i.Status = ItemPurchased
	return nil
}

// Cancel closes a non-terminal item. Canceling an already terminal item
// fails so that completed receipts are never silently discarded.
func (i *OrderItem) Cancel() error {
	if i.Status.Terminal() {
		return ErrInvalidState
	}
	i.Status = ItemCanceled
	return nil
}

// Receive records a partial or full delivery against the item. The item
// must have been purchased first; the cumulative received quantity can
// never exceed the ordered quantity. On success the event is appended to
// the receipt history and the item status is derived: a full receipt ends
// in received (or received-with-issues when the closing delivery was
// flagged), anything less stays partially received.
func (i *OrderItem) Receive(quantity decimal.Decimal, condition ReceiptCondition, note string, at time.Time) (*ReceiptEvent, error) {
	if quantity.Sign() <= 0 {
		return nil, ErrInvalidQuantity
	}
	if i.Status != ItemPurchased && i.Status != ItemPartiallyReceived {
		return nil, ErrInvalidState
	}
	total := i.ReceivedQuantity.Add(quantity)
	if total.GreaterThan(i.OrderedQuantity) {
		return nil, ErrOverReceipt
	}
	event := NewReceiptEvent(i.ID, quantity, condition, note, at)
	i.Receipts = append(i.Receipts, event)
	i.ReceivedQuantity = total
	switch {
	case total.Equal(i.OrderedQuantity) && event.Condition == ConditionWithIssues:
		i.Status = ItemReceivedWithIssues
	case total.Equal(i.OrderedQuantity):
		i.Status = ItemReceived
	default:
		i.Status = ItemPartiallyReceived
	}
	return &event, nil
}

// UndoReceive re-opens a fully received item for receiving. This is a
// destructive reset, not an event-by-event reversal: the received quantity
// goes back to zero, the whole receipt history is discarded, and the item
// returns to purchased.
func (i *OrderItem) UndoReceive() error {
	if i.Status != ItemReceived && i.Status != ItemReceivedWithIssues {
		return ErrInvalidState
	}
	i.ReceivedQuantity = decimal.Zero
	i.Receipts = nil
	i.Status = ItemPurchased
	return nil
}

// SetApprovedQuantity overwrites the authorized quantity of an approved or
// already purchased item. The status is left untouched.
func (i *OrderItem) SetApprovedQuantity(quantity decimal.Decimal) error {
	if i.Status != ItemApproved && i.Status != ItemPurchased {
		return ErrInvalidState
	}
	if quantity.Sign() <= 0 {
		return ErrInvalidQuantity
	}
	if quantity.GreaterThan(i.OrderedQuantity) {
		return ErrQuantityTooHigh
	}
	approved := quantity
	i.ApprovedQuantity = &approved
	return nil
}

// Clone returns a deep copy so adapters can hand out snapshots safely.
func (i *OrderItem) Clone() *OrderItem {
	clone := *i
	if i.ApprovedQuantity != nil {
		approved := *i.ApprovedQuantity
		clone.ApprovedQuantity = &approved
	}
	clone.Receipts = append([]ReceiptEvent(nil), i.Receipts...)
	return &clone
}
