package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchasedItem(t *testing.T, ordered string) *OrderItem {
	t.Helper()
	item, err := NewOrderItem(1, "AG-204", "circular knitting needle", "pc", decimal.RequireFromString(ordered))
	require.NoError(t, err)
	require.NoError(t, item.Approve(nil))
	require.NoError(t, item.MarkPurchased())
	return item
}

func TestNewOrderItem_Validation(t *testing.T) {
	_, err := NewOrderItem(1, " ", "desc", "pc", decimal.NewFromInt(5))
	require.ErrorIs(t, err, ErrEmptyCode)

	_, err = NewOrderItem(1, "AG-204", "desc", "pc", decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestReceive_FullInOneCall(t *testing.T) {
	item := purchasedItem(t, "10")

	event, err := item.Receive(decimal.NewFromInt(10), ConditionOK, "", time.Now())
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, ItemReceived, item.Status)
	assert.True(t, item.ReceivedQuantity.Equal(decimal.NewFromInt(10)))
	assert.Len(t, item.Receipts, 1)
}

func TestReceive_PartialThenFull(t *testing.T) {
	item := purchasedItem(t, "10")

	_, err := item.Receive(decimal.NewFromInt(6), ConditionOK, "first box", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ItemPartiallyReceived, item.Status)

	_, err = item.Receive(decimal.NewFromInt(4), ConditionOK, "second box", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ItemReceived, item.Status)
	assert.True(t, item.ReceivedQuantity.Equal(item.OrderedQuantity))
	assert.Len(t, item.Receipts, 2)
}

func TestReceive_FinalConditionDecidesIssueFlag(t *testing.T) {
	item := purchasedItem(t, "10")

	_, err := item.Receive(decimal.NewFromInt(6), ConditionOK, "", time.Now())
	require.NoError(t, err)
	_, err = item.Receive(decimal.NewFromInt(4), ConditionWithIssues, "two damaged", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ItemReceivedWithIssues, item.Status)
}

func TestReceive_EarlierIssuesDoNotStick(t *testing.T) {
	item := purchasedItem(t, "10")

	_, err := item.Receive(decimal.NewFromInt(6), ConditionWithIssues, "", time.Now())
	require.NoError(t, err)
	_, err = item.Receive(decimal.NewFromInt(4), ConditionOK, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ItemReceived, item.Status)
}

func TestReceive_OverReceiptLeavesItemUnchanged(t *testing.T) {
	item := purchasedItem(t, "10")
	_, err := item.Receive(decimal.NewFromInt(6), ConditionOK, "", time.Now())
	require.NoError(t, err)

	before := item.Clone()
	_, err = item.Receive(decimal.NewFromInt(5), ConditionOK, "", time.Now())
	require.ErrorIs(t, err, ErrOverReceipt)
	assert.Equal(t, before.Status, item.Status)
	assert.True(t, before.ReceivedQuantity.Equal(item.ReceivedQuantity))
	assert.Len(t, item.Receipts, len(before.Receipts))
}

func TestReceive_InvalidQuantityAndState(t *testing.T) {
	item := purchasedItem(t, "10")
	_, err := item.Receive(decimal.Zero, ConditionOK, "", time.Now())
	require.ErrorIs(t, err, ErrInvalidQuantity)

	pending, err2 := NewOrderItem(1, "AG-205", "", "pc", decimal.NewFromInt(3))
	require.NoError(t, err2)
	_, err = pending.Receive(decimal.NewFromInt(1), ConditionOK, "", time.Now())
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestReceive_FractionalQuantities(t *testing.T) {
	item := purchasedItem(t, "2.5")

	_, err := item.Receive(decimal.RequireFromString("1.25"), ConditionOK, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ItemPartiallyReceived, item.Status)

	_, err = item.Receive(decimal.RequireFromString("1.25"), ConditionOK, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ItemReceived, item.Status)
}

func TestUndoReceive_ResetsEverything(t *testing.T) {
	item := purchasedItem(t, "10")
	for _, q := range []int64{3, 3, 4} {
		_, err := item.Receive(decimal.NewFromInt(q), ConditionOK, "", time.Now())
		require.NoError(t, err)
	}
	require.Equal(t, ItemReceived, item.Status)
	require.Len(t, item.Receipts, 3)

	require.NoError(t, item.UndoReceive())
	assert.Equal(t, ItemPurchased, item.Status)
	assert.True(t, item.ReceivedQuantity.IsZero())
	assert.Empty(t, item.Receipts)
}

func TestUndoReceive_RequiresFullReceipt(t *testing.T) {
	item := purchasedItem(t, "10")
	_, err := item.Receive(decimal.NewFromInt(4), ConditionOK, "", time.Now())
	require.NoError(t, err)

	require.ErrorIs(t, item.UndoReceive(), ErrInvalidState)
}

func TestSetApprovedQuantity(t *testing.T) {
	item := purchasedItem(t, "10")

	require.NoError(t, item.SetApprovedQuantity(decimal.NewFromInt(8)))
	require.NotNil(t, item.ApprovedQuantity)
	assert.True(t, item.ApprovedQuantity.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, ItemPurchased, item.Status)

	require.ErrorIs(t, item.SetApprovedQuantity(decimal.Zero), ErrInvalidQuantity)
	require.ErrorIs(t, item.SetApprovedQuantity(decimal.NewFromInt(11)), ErrQuantityTooHigh)

	_, err := item.Receive(decimal.NewFromInt(10), ConditionOK, "", time.Now())
	require.NoError(t, err)
	require.ErrorIs(t, item.SetApprovedQuantity(decimal.NewFromInt(5)), ErrInvalidState)
}

func TestApproveRejectPurchaseTransitions(t *testing.T) {
	item, err := NewOrderItem(1, "AG-204", "", "pc", decimal.NewFromInt(5))
	require.NoError(t, err)

	require.ErrorIs(t, item.MarkPurchased(), ErrInvalidState)

	qty := decimal.NewFromInt(3)
	require.NoError(t, item.Approve(&qty))
	assert.Equal(t, ItemApproved, item.Status)
	require.NotNil(t, item.ApprovedQuantity)
	assert.True(t, item.ApprovedQuantity.Equal(qty))

	require.ErrorIs(t, item.Reject(), ErrInvalidState)
	require.NoError(t, item.MarkPurchased())
	assert.Equal(t, ItemPurchased, item.Status)
}

func TestCancelItem(t *testing.T) {
	item := purchasedItem(t, "5")
	require.NoError(t, item.Cancel())
	assert.Equal(t, ItemCanceled, item.Status)

	require.ErrorIs(t, item.Cancel(), ErrInvalidState)
}

func TestOrderCancel_OverridesAndGuards(t *testing.T) {
	a, err := NewOrderItem(0, "AG-1", "", "pc", decimal.NewFromInt(5))
	require.NoError(t, err)
	b, err := NewOrderItem(0, "AG-2", "", "pc", decimal.NewFromInt(3))
	require.NoError(t, err)
	require.NoError(t, b.Approve(nil))

	order, err := NewOrder("PED-2024-001", "marcos", "knitting", []*OrderItem{a, b})
	require.NoError(t, err)

	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderCanceled, order.Status)
	assert.Equal(t, ItemCanceled, a.Status)
	assert.Equal(t, ItemCanceled, b.Status)

	require.ErrorIs(t, order.Cancel(), ErrOrderClosed)
}

func TestOrderCancel_KeepsTerminalItems(t *testing.T) {
	received := purchasedItem(t, "2")
	_, err := received.Receive(decimal.NewFromInt(2), ConditionOK, "", time.Now())
	require.NoError(t, err)
	open, err := NewOrderItem(0, "AG-9", "", "pc", decimal.NewFromInt(1))
	require.NoError(t, err)

	order, err := NewOrder("PED-2024-002", "marcos", "dyeing", []*OrderItem{received, open})
	require.NoError(t, err)
	order.Status = OrderPartiallyReceived

	require.NoError(t, order.Cancel())
	assert.Equal(t, ItemReceived, received.Status)
	assert.Equal(t, ItemCanceled, open.Status)
}
