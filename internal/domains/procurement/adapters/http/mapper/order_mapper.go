package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
)

// ReceiptEvent is the HTTP representation of a single receipt entry.
type ReceiptEvent struct {
	ID         string          `json:"id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Condition  string          `json:"condition"`
	Note       string          `json:"note,omitempty"`
	RecordedAt time.Time       `json:"recordedAt"`
}

// OrderItem is the HTTP representation of an order line.
type OrderItem struct {
	ID               int64            `json:"id"`
	OrderID          int64            `json:"orderId"`
	Code             string           `json:"code"`
	Description      string           `json:"description,omitempty"`
	Unit             string           `json:"unit,omitempty"`
	OrderedQuantity  decimal.Decimal  `json:"orderedQuantity"`
	ApprovedQuantity *decimal.Decimal `json:"approvedQuantity,omitempty"`
	ReceivedQuantity decimal.Decimal  `json:"receivedQuantity"`
	Status           string           `json:"status"`
	Receipts         []ReceiptEvent   `json:"receipts,omitempty"`
	Version          int64            `json:"version"`
}

// Order is the HTTP representation of a purchase order.
type Order struct {
	ID          int64       `json:"id"`
	Number      string      `json:"number"`
	RequestedBy string      `json:"requestedBy,omitempty"`
	Sector      string      `json:"sector,omitempty"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"createdAt,omitempty"`
}

// MutationItem captures an inbound order line for the create flow.
type MutationItem struct {
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// MutationOrder captures the inbound payload for order creation.
type MutationOrder struct {
	Number      string         `json:"number"`
	RequestedBy string         `json:"requestedBy,omitempty"`
	Sector      string         `json:"sector,omitempty"`
	Items       []MutationItem `json:"items"`
}

// ApproveItemRequest carries the optional approved quantity override.
type ApproveItemRequest struct {
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
}

// ReceiveItemRequest carries a receipt entry payload.
type ReceiveItemRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Condition string          `json:"condition,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// EditQuantityRequest carries the replacement approved quantity.
type EditQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ToCreateOrderInput converts a mutation payload into the application input.
func ToCreateOrderInput(model MutationOrder) ports.CreateOrderInput {
	items := make([]ports.NewItemInput, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, ports.NewItemInput{
			Code:        item.Code,
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
		})
	}
	return ports.CreateOrderInput{
		Number:      model.Number,
		RequestedBy: model.RequestedBy,
		Sector:      model.Sector,
		Items:       items,
	}
}

// FromDomainOrder maps a domain order into its transport representation.
func FromDomainOrder(order *domain.Order) Order {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, FromDomainItem(item))
	}
	return Order{
		ID:          order.ID,
		Number:      order.Number,
		RequestedBy: order.RequestedBy,
		Sector:      order.Sector,
		Status:      string(order.Status),
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
}

// FromDomainOrderList maps a slice of domain orders to transport orders.
func FromDomainOrderList(list []*domain.Order) []Order {
	resp := make([]Order, 0, len(list))
	for _, order := range list {
		resp = append(resp, FromDomainOrder(order))
	}
	return resp
}

// FromDomainItem maps a domain order line into its transport representation.
func FromDomainItem(item *domain.OrderItem) OrderItem {
	var approved *decimal.Decimal
	if item.ApprovedQuantity != nil {
		value := *item.ApprovedQuantity
		approved = &value
	}
	receipts := make([]ReceiptEvent, 0, len(item.Receipts))
	for _, event := range item.Receipts {
		receipts = append(receipts, ReceiptEvent{
			ID:         event.ID.String(),
			Quantity:   event.Quantity,
			Condition:  string(event.Condition),
			Note:       event.Note,
			RecordedAt: event.RecordedAt,
		})
	}
	return OrderItem{
		ID:               item.ID,
		OrderID:          item.OrderID,
		Code:             item.Code,
		Description:      item.Description,
		Unit:             item.Unit,
		OrderedQuantity:  item.OrderedQuantity,
		ApprovedQuantity: approved,
		ReceivedQuantity: item.ReceivedQuantity,
		Status:           string(item.Status),
		Receipts:         receipts,
		Version:          item.Version,
	}
}

// ToReceiveItemInput converts a receipt payload into the application input.
func ToReceiveItemInput(itemID int64, req ReceiveItemRequest) ports.ReceiveItemInput {
	return ports.ReceiveItemInput{
		ItemID:    itemID,
		Quantity:  req.Quantity,
		Condition: domain.ReceiptCondition(req.Condition),
		Note:      req.Note,
	}
}
