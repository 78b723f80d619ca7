package domain

import "errors"

// ItemStatus tracks the lifecycle of a single order line item.
type ItemStatus string

const (
	ItemPending            ItemStatus = "pending"
	ItemApproved           ItemStatus = "approved"
	ItemRejected           ItemStatus = "rejected"
	ItemPurchased          ItemStatus = "purchased"
	ItemPartiallyReceived  ItemStatus = "partially_received"
	ItemReceived           ItemStatus = "received"
	ItemReceivedWithIssues ItemStatus = "received_with_issues"
	ItemCanceled           ItemStatus = "canceled"
)

// OrderStatus is always derived from the statuses of the order's items,
// except for an explicit cancel which overrides the derivation.
type OrderStatus string

const (
	OrderPending            OrderStatus = "pending"
	OrderPartiallyApproved  OrderStatus = "partially_approved"
	OrderApproved           OrderStatus = "approved"
	OrderPartiallyPurchased OrderStatus = "partially_purchased"
	OrderPurchased          OrderStatus = "purchased"
	OrderPartiallyReceived  OrderStatus = "partially_received"
	OrderReceived           OrderStatus = "received"
	OrderRejected           OrderStatus = "rejected"
	OrderCanceled           OrderStatus = "canceled"
	OrderInReview           OrderStatus = "in_review"
)

// ErrNoItems is returned when a status derivation is attempted for an
// order without any items.
var ErrNoItems = errors.New("order has no items")

// Terminal reports whether no further derived transition applies to the
// item without an explicit override.
func (s ItemStatus) Terminal() bool {
	switch s {
	case ItemReceived, ItemReceivedWithIssues, ItemRejected, ItemCanceled:
		return true
	default:
		return false
	}
}

// Reconcile derives the parent order status from its items' statuses.
//
// The rules are evaluated as an ordered cascade and the order matters:
// several predicates overlap (for example "all received or closed" is a
// superset of "any received"), so an earlier rule always wins over a
// later one. Received items with issues count as received here.
func Reconcile(statuses []ItemStatus) (OrderStatus, error) {
	if len(statuses) == 0 {
		return "", ErrNoItems
	}
	switch {
	case all(statuses, ItemCanceled):
		return OrderCanceled, nil
	case all(statuses, ItemRejected):
		return OrderRejected, nil
	case allIn(statuses, ItemReceived, ItemReceivedWithIssues, ItemRejected, ItemCanceled):
		return OrderReceived, nil
	case anyIn(statuses, ItemReceived, ItemReceivedWithIssues):
		return OrderPartiallyReceived, nil
	case allIn(statuses, ItemPurchased, ItemReceived, ItemReceivedWithIssues, ItemRejected, ItemCanceled):
		return OrderPurchased, nil
	case anyIn(statuses, ItemPurchased):
		return OrderPartiallyPurchased, nil
	case allIn(statuses, ItemApproved, ItemPurchased, ItemReceived, ItemReceivedWithIssues, ItemRejected, ItemCanceled):
		return OrderApproved, nil
	case anyIn(statuses, ItemApproved):
		return OrderPartiallyApproved, nil
	case all(statuses, ItemPending):
		return OrderPending, nil
	default:
		return OrderInReview, nil
	}
}

func all(statuses []ItemStatus, want ItemStatus) bool {
	for _, s := range statuses {
		if s != want {
			return false
		}
	}
	return true
}

func allIn(statuses []ItemStatus, want ...ItemStatus) bool {
	for _, s := range statuses {
		if !matches(s, want) {
			return false
		}
	}
	return true
}

func anyIn(statuses []ItemStatus, want ...ItemStatus) bool {
	for _, s := range statuses {
		if matches(s, want) {
			return true
		}
	}
	return false
}

func matches(s ItemStatus, want []ItemStatus) bool {
	for _, w := range want {
		if s == w {
			return true
		}
	}
	return false
}
