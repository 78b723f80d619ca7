package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptCondition records in what shape a delivery arrived.
type ReceiptCondition string

const (
	ConditionOK         ReceiptCondition = "ok"
	ConditionWithIssues ReceiptCondition = "with_issues"
)

// ReceiptEvent is one delivery recorded against an order item. Events are
// append-only: once recorded they are never mutated, only the undo-receive
// operation discards the whole history at once.
type ReceiptEvent struct {
	ID         uuid.UUID
	ItemID     int64
	Quantity   decimal.Decimal
	Condition  ReceiptCondition
	Note       string
	RecordedAt time.Time
}

// NewReceiptEvent builds a receipt event for the given item. The quantity
// must already be validated by the item's Receive method.
func NewReceiptEvent(itemID int64, quantity decimal.Decimal, condition ReceiptCondition, note string, recordedAt time.Time) ReceiptEvent {
	if condition == "" {
		condition = ConditionOK
	}
	return ReceiptEvent{
		ID:         uuid.New(),
		ItemID:     itemID,
		Quantity:   quantity,
		Condition:  condition,
		Note:       note,
		RecordedAt: recordedAt,
	}
}
