//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
	"github.com/azaconnect/maintenance-api/internal/platform/migrations"
)

func setupProcurementContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("maintenance_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedOrder(t *testing.T, repo *Repository, quantities ...string) *domain.Order {
	t.Helper()
	items := make([]*domain.OrderItem, 0, len(quantities))
	for i, q := range quantities {
		item, err := domain.NewOrderItem(0, "AG-"+string(rune('1'+i)), "needle", "pc", decimal.RequireFromString(q))
		require.NoError(t, err)
		items = append(items, item)
	}
	order, err := domain.NewOrder("PED-IT-001", "marcos", "knitting", items)
	require.NoError(t, err)
	order.CreatedAt = time.Now()
	saved, err := repo.SaveOrder(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func TestRepository_SaveAndGetOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProcurementContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved := seedOrder(t, repo, "5", "3")
	require.Len(t, saved.Items, 2)
	assert.Equal(t, domain.OrderPending, saved.Status)

	fetched, err := repo.GetOrder(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Number, fetched.Number)
	require.Len(t, fetched.Items, 2)
	assert.True(t, fetched.Items[0].OrderedQuantity.Equal(decimal.NewFromInt(5)))
}

func TestRepository_SaveItemVersionGuard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProcurementContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	order := seedOrder(t, repo, "10")
	itemID := order.Items[0].ID

	first, err := repo.GetItem(ctx, itemID)
	require.NoError(t, err)
	second, err := repo.GetItem(ctx, itemID)
	require.NoError(t, err)

	require.NoError(t, first.Approve(nil))
	_, err = repo.SaveItem(ctx, first, nil)
	require.NoError(t, err)

	// The second snapshot is now stale: its write must be rejected.
	require.NoError(t, second.Approve(nil))
	_, err = repo.SaveItem(ctx, second, nil)
	require.ErrorIs(t, err, ports.ErrConflict)
}

func TestRepository_ReceiptHistoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProcurementContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	order := seedOrder(t, repo, "10")
	itemID := order.Items[0].ID

	item, err := repo.GetItem(ctx, itemID)
	require.NoError(t, err)
	require.NoError(t, item.Approve(nil))
	require.NoError(t, item.MarkPurchased())
	item, err = repo.SaveItem(ctx, item, nil)
	require.NoError(t, err)

	event, err := item.Receive(decimal.NewFromInt(6), domain.ConditionOK, "first box", time.Now())
	require.NoError(t, err)
	item, err = repo.SaveItem(ctx, item, event)
	require.NoError(t, err)

	event, err = item.Receive(decimal.NewFromInt(4), domain.ConditionWithIssues, "torn packaging", time.Now())
	require.NoError(t, err)
	item, err = repo.SaveItem(ctx, item, event)
	require.NoError(t, err)

	require.Len(t, item.Receipts, 2)
	assert.Equal(t, "first box", item.Receipts[0].Note)
	assert.Equal(t, domain.ItemReceivedWithIssues, item.Status)

	// Undo clears the persisted history in the same commit.
	require.NoError(t, item.UndoReceive())
	item, err = repo.SaveItem(ctx, item, nil)
	require.NoError(t, err)
	assert.Empty(t, item.Receipts)
	assert.Equal(t, domain.ItemPurchased, item.Status)
}

func TestRepository_SaveCanceledOrderIsAllOrNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProcurementContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	order := seedOrder(t, repo, "5", "3")

	snapshot, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)

	// Bump one item behind the snapshot's back so its version is stale.
	concurrent, err := repo.GetItem(ctx, snapshot.Items[1].ID)
	require.NoError(t, err)
	require.NoError(t, concurrent.Approve(nil))
	_, err = repo.SaveItem(ctx, concurrent, nil)
	require.NoError(t, err)

	require.NoError(t, snapshot.Cancel())
	_, err = repo.SaveCanceledOrder(ctx, snapshot)
	require.ErrorIs(t, err, ports.ErrConflict)

	// The rejected commit must not have touched the first item or the order.
	fetched, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, fetched.Status)
	assert.Equal(t, domain.ItemPending, fetched.Items[0].Status)
	assert.Equal(t, domain.ItemApproved, fetched.Items[1].Status)

	// A fresh snapshot carries current versions and lands whole.
	fresh, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, fresh.Cancel())
	canceled, err := repo.SaveCanceledOrder(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCanceled, canceled.Status)
	for _, item := range canceled.Items {
		assert.Equal(t, domain.ItemCanceled, item.Status)
	}
}

func TestRepository_StatusRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProcurementContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	order := seedOrder(t, repo, "5", "3")

	statuses, err := repo.ListItemStatuses(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemStatus{domain.ItemPending, domain.ItemPending}, statuses)

	require.NoError(t, repo.SaveOrderStatus(ctx, order.ID, domain.OrderInReview))
	fetched, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderInReview, fetched.Status)

	require.ErrorIs(t, repo.SaveOrderStatus(ctx, order.ID+999, domain.OrderPending), ports.ErrNotFound)
}
