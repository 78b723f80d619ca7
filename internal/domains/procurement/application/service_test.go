package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
)

type fakeRepo struct {
	mu              sync.Mutex
	orders          map[int64]*domain.Order
	items           map[int64]*domain.OrderItem
	nextOrderID     int64
	nextItemID      int64
	conflictsLeft   int
	cancelConflicts int
	statusWrites    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders: map[int64]*domain.Order{},
		items:  map[int64]*domain.OrderItem{},
	}
}

func (f *fakeRepo) SaveOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := order.Clone()
	if clone.ID == 0 {
		f.nextOrderID++
		clone.ID = f.nextOrderID
	}
	for _, item := range clone.Items {
		if item.ID == 0 {
			f.nextItemID++
			item.ID = f.nextItemID
		}
		item.OrderID = clone.ID
		f.items[item.ID] = item.Clone()
	}
	f.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (f *fakeRepo) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := order.Clone()
	clone.Items = clone.Items[:0]
	for _, item := range f.itemsOf(id) {
		clone.Items = append(clone.Items, item.Clone())
	}
	return clone, nil
}

func (f *fakeRepo) ListOrders(_ context.Context) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]*domain.Order, 0, len(f.orders))
	for _, order := range f.orders {
		list = append(list, order.Clone())
	}
	return list, nil
}

func (f *fakeRepo) GetItem(_ context.Context, id int64) (*domain.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return item.Clone(), nil
}

func (f *fakeRepo) SaveItem(_ context.Context, item *domain.OrderItem, _ *domain.ReceiptEvent) (*domain.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return nil, ports.ErrConflict
	}
	current, ok := f.items[item.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if current.Version != item.Version {
		return nil, ports.ErrConflict
	}
	clone := item.Clone()
	clone.Version++
	f.items[item.ID] = clone
	return clone.Clone(), nil
}

func (f *fakeRepo) SaveCanceledOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelConflicts > 0 {
		f.cancelConflicts--
		return nil, ports.ErrConflict
	}
	stored, ok := f.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	for _, item := range order.Items {
		current, ok := f.items[item.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		if current.Version != item.Version {
			return nil, ports.ErrConflict
		}
	}
	for _, item := range order.Items {
		clone := item.Clone()
		clone.Version++
		f.items[item.ID] = clone
	}
	stored.Status = order.Status
	clone := stored.Clone()
	clone.Items = nil
	for _, item := range f.itemsOf(order.ID) {
		clone.Items = append(clone.Items, item.Clone())
	}
	return clone, nil
}

func (f *fakeRepo) ListItemStatuses(_ context.Context, orderID int64) ([]domain.ItemStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var statuses []domain.ItemStatus
	for _, item := range f.itemsOf(orderID) {
		statuses = append(statuses, item.Status)
	}
	return statuses, nil
}

func (f *fakeRepo) SaveOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	order.Status = status
	f.statusWrites++
	return nil
}

func (f *fakeRepo) itemsOf(orderID int64) []*domain.OrderItem {
	var result []*domain.OrderItem
	for id := int64(1); id <= f.nextItemID; id++ {
		if item, ok := f.items[id]; ok && item.OrderID == orderID {
			result = append(result, item)
		}
	}
	return result
}

var _ ports.Repository = (*fakeRepo)(nil)

type recordingNotifier struct {
	placed []int64
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, order *domain.Order) error {
	n.placed = append(n.placed, order.ID)
	return nil
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func placeOrder(t *testing.T, svc *Service, quantities ...string) *domain.Order {
	t.Helper()
	input := ports.CreateOrderInput{Number: "PED-2024-017", RequestedBy: "marcos", Sector: "knitting"}
	for i, q := range quantities {
		input.Items = append(input.Items, ports.NewItemInput{
			Code:     "AG-" + string(rune('A'+i)),
			Unit:     "pc",
			Quantity: qty(q),
		})
	}
	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	return order
}

func purchaseItem(t *testing.T, svc *Service, itemID int64) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.ApproveItem(ctx, itemID, nil)
	require.NoError(t, err)
	_, err = svc.PurchaseItem(ctx, itemID)
	require.NoError(t, err)
}

func TestCreateOrder_NotifiesAndStartsPending(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, WithNotifier(notifier))

	order := placeOrder(t, svc, "5", "3")
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, []int64{order.ID}, notifier.placed)
}

func TestCreateOrder_RejectsEmptyAndInvalid(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, ports.CreateOrderInput{Number: "PED-1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(ctx, ports.CreateOrderInput{
		Number: "PED-1",
		Items:  []ports.NewItemInput{{Code: "AG-1", Quantity: decimal.Zero}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApprovalFlowReconcilesOrder(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	order := placeOrder(t, svc, "5", "3")

	_, err := svc.ApproveItem(ctx, order.Items[0].ID, nil)
	require.NoError(t, err)
	refreshed, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPartiallyApproved, refreshed.Status)

	_, err = svc.ApproveItem(ctx, order.Items[1].ID, nil)
	require.NoError(t, err)
	refreshed, err = svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderApproved, refreshed.Status)
}

func TestReceiveFlow_PartialReceiptWinsOverPurchased(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	order := placeOrder(t, svc, "5", "3")
	itemA, itemB := order.Items[0].ID, order.Items[1].ID
	purchaseItem(t, svc, itemA)
	purchaseItem(t, svc, itemB)

	received, err := svc.ReceiveItem(ctx, ports.ReceiveItemInput{ItemID: itemA, Quantity: qty("5")})
	require.NoError(t, err)
	assert.Equal(t, domain.ItemReceived, received.Status)

	// Item A fully received, item B still purchased: the "any received"
	// rule fires before the "all purchased or closed" rule.
	refreshed, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPartiallyReceived, refreshed.Status)
}

func TestReceiveItem_OverReceiptFailsWithoutSideEffects(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	order := placeOrder(t, svc, "10")
	itemID := order.Items[0].ID
	purchaseItem(t, svc, itemID)

	_, err := svc.ReceiveItem(ctx, ports.ReceiveItemInput{ItemID: itemID, Quantity: qty("6")})
	require.NoError(t, err)

	_, err = svc.ReceiveItem(ctx, ports.ReceiveItemInput{ItemID: itemID, Quantity: qty("5")})
	require.ErrorIs(t, err, domain.ErrOverReceipt)

	item, err := repo.GetItem(ctx, itemID)
	require.NoError(t, err)
	assert.True(t, item.ReceivedQuantity.Equal(qty("6")))
	assert.Len(t, item.Receipts, 1)
}

func TestUndoReceive_ResetsItemAndOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	order := placeOrder(t, svc, "10")
	itemID := order.Items[0].ID
	purchaseItem(t, svc, itemID)
	for _, q := range []string{"3", "3", "4"} {
		_, err := svc.ReceiveItem(ctx, ports.ReceiveItemInput{ItemID: itemID, Quantity: qty(q)})
		require.NoError(t, err)
	}

	item, err := svc.UndoReceive(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemPurchased, item.Status)
	assert.True(t, item.ReceivedQuantity.IsZero())
	assert.Empty(t, item.Receipts)

	refreshed, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPurchased, refreshed.Status)
}

func TestRefreshOrderStatus_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	order := placeOrder(t, svc, "5")

	first, err := svc.RefreshOrderStatus(ctx, order.ID)
	require.NoError(t, err)
	writes := repo.statusWrites
	second, err := svc.RefreshOrderStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, writes+1, repo.statusWrites)
}

func TestCancelOrder_OverridesCascade(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	order := placeOrder(t, svc, "5", "3")
	_, err := svc.ApproveItem(ctx, order.Items[1].ID, nil)
	require.NoError(t, err)

	canceled, err := svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCanceled, canceled.Status)
	for _, item := range canceled.Items {
		assert.Equal(t, domain.ItemCanceled, item.Status)
	}

	// Further reconciliation is suspended: canceled stays canceled.
	status, err := svc.RefreshOrderStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCanceled, status)
}

func TestCancelOrder_TerminalOrdersRefuse(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	order := placeOrder(t, svc, "2")
	itemID := order.Items[0].ID
	purchaseItem(t, svc, itemID)
	_, err := svc.ReceiveItem(ctx, ports.ReceiveItemInput{ItemID: itemID, Quantity: qty("2")})
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrOrderClosed)
	require.ErrorIs(t, err, ErrConflictState)

	canceled, err := svc.CancelOrder(ctx, order.ID+999)
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Nil(t, canceled)
}

func TestCancelOrder_RetriesOnConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	order := placeOrder(t, svc, "5", "3")

	repo.cancelConflicts = 2
	canceled, err := svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCanceled, canceled.Status)
}

func TestCancelOrder_FailedCommitLeavesNothingCanceled(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	order := placeOrder(t, svc, "5", "3")

	repo.cancelConflicts = maxConflictRetries
	_, err := svc.CancelOrder(ctx, order.ID)
	require.ErrorIs(t, err, ErrRetriesExhausted)

	// The cancel is a single commit: when it never lands, neither the
	// order status nor any item may reflect it.
	refreshed, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, refreshed.Status)
	for _, item := range refreshed.Items {
		assert.Equal(t, domain.ItemPending, item.Status)
	}
}

func TestMapError_ClassifiesStateConflicts(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	order := placeOrder(t, svc, "4")
	itemID := order.Items[0].ID

	// Receiving a pending item is a state conflict, not bad input.
	_, err := svc.ReceiveItem(ctx, ports.ReceiveItemInput{ItemID: itemID, Quantity: qty("1")})
	require.ErrorIs(t, err, ErrConflictState)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	require.NotErrorIs(t, err, ErrInvalidInput)

	purchaseItem(t, svc, itemID)
	_, err = svc.ReceiveItem(ctx, ports.ReceiveItemInput{ItemID: itemID, Quantity: qty("9")})
	require.ErrorIs(t, err, ErrConflictState)
	require.ErrorIs(t, err, domain.ErrOverReceipt)
}

func TestEditApprovedQuantity_AfterPurchase(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	order := placeOrder(t, svc, "10")
	itemID := order.Items[0].ID
	purchaseItem(t, svc, itemID)

	item, err := svc.EditApprovedQuantity(ctx, itemID, qty("7"))
	require.NoError(t, err)
	require.NotNil(t, item.ApprovedQuantity)
	assert.True(t, item.ApprovedQuantity.Equal(qty("7")))
	assert.Equal(t, domain.ItemPurchased, item.Status)

	_, err = svc.EditApprovedQuantity(ctx, itemID, qty("11"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMutateItem_RetriesOnConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	order := placeOrder(t, svc, "5")
	itemID := order.Items[0].ID

	repo.conflictsLeft = 2
	item, err := svc.ApproveItem(ctx, itemID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemApproved, item.Status)
}

func TestMutateItem_GivesUpAfterBoundedRetries(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	order := placeOrder(t, svc, "5")

	repo.conflictsLeft = maxConflictRetries
	_, err := svc.ApproveItem(ctx, order.Items[0].ID, nil)
	require.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestRejectItem_MixedOrderNeedsReview(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	order := placeOrder(t, svc, "5", "3")

	_, err := svc.RejectItem(ctx, order.Items[0].ID)
	require.NoError(t, err)
	refreshed, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderInReview, refreshed.Status)

	_, err = svc.RejectItem(ctx, order.Items[1].ID)
	require.NoError(t, err)
	refreshed, err = svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRejected, refreshed.Status)
}
