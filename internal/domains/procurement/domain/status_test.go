package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_EmptyInput(t *testing.T) {
	_, err := Reconcile(nil)
	require.ErrorIs(t, err, ErrNoItems)
}

func TestReconcile_Cascade(t *testing.T) {
	cases := []struct {
		name     string
		statuses []ItemStatus
		want     OrderStatus
	}{
		{"all canceled", []ItemStatus{ItemCanceled, ItemCanceled}, OrderCanceled},
		{"all rejected", []ItemStatus{ItemRejected, ItemRejected}, OrderRejected},
		{"received and rejected closes the order", []ItemStatus{ItemReceived, ItemRejected}, OrderReceived},
		{"received with issues closes the order", []ItemStatus{ItemReceivedWithIssues, ItemCanceled}, OrderReceived},
		{"any received wins over purchased", []ItemStatus{ItemReceived, ItemPurchased}, OrderPartiallyReceived},
		{"all purchased or closed", []ItemStatus{ItemPurchased, ItemRejected}, OrderPurchased},
		{"purchased and approved", []ItemStatus{ItemPurchased, ItemApproved}, OrderPartiallyPurchased},
		{"all approved", []ItemStatus{ItemApproved, ItemApproved}, OrderApproved},
		{"approved and pending", []ItemStatus{ItemPending, ItemApproved}, OrderPartiallyApproved},
		{"all pending", []ItemStatus{ItemPending, ItemPending}, OrderPending},
		{"rejected and pending needs review", []ItemStatus{ItemRejected, ItemPending}, OrderInReview},
		{"single item", []ItemStatus{ItemPurchased}, OrderPurchased},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Reconcile(tc.statuses)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	statuses := []ItemStatus{ItemReceived, ItemPurchased, ItemApproved}
	first, err := Reconcile(statuses)
	require.NoError(t, err)
	second, err := Reconcile(statuses)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestItemStatus_Terminal(t *testing.T) {
	assert.True(t, ItemReceived.Terminal())
	assert.True(t, ItemReceivedWithIssues.Terminal())
	assert.True(t, ItemRejected.Terminal())
	assert.True(t, ItemCanceled.Terminal())
	assert.False(t, ItemPending.Terminal())
	assert.False(t, ItemPurchased.Terminal())
	assert.False(t, ItemPartiallyReceived.Terminal())
}
