package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	procurementports "github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
)

const (
	// NotifyOrderPlacedActivityName delivers the order-placed alert to stakeholders.
	NotifyOrderPlacedActivityName = "procurement.activities.NotifyOrderPlaced"
)

// OrderIdentifier references an order by ID across the workflow boundary.
type OrderIdentifier struct {
	ID int64
}

// Activities groups activities that operate on the procurement bounded context.
type Activities struct {
	repo     procurementports.Repository
	notifier procurementports.Notifier
}

// NewActivities wires the procurement collaborators into the Temporal activities bundle.
func NewActivities(repo procurementports.Repository, notifier procurementports.Notifier) *Activities {
	return &Activities{repo: repo, notifier: notifier}
}

// NotifyOrderPlaced loads the order and delivers the placement alert.
func (a *Activities) NotifyOrderPlaced(ctx context.Context, input OrderIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		logger.Error("order notify activity not initialized", "orderId", input.ID)
		return errors.New("order notify activity not initialized")
	}
	if a.notifier == nil {
		logger.Info("notifier not configured; skipping", "orderId", input.ID)
		return nil
	}

	var hb notifyHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("NotifyOrderPlaced already completed in prior attempt; skipping", "orderId", input.ID)
		return nil
	}

	logger.Info("NotifyOrderPlaced activity started", "orderId", input.ID)
	order, err := a.repo.GetOrder(ctx, input.ID)
	if err != nil {
		logger.Error("NotifyOrderPlaced failed to load order", "orderId", input.ID, "error", err)
		return err
	}
	if err := a.notifier.OrderPlaced(ctx, order); err != nil {
		logger.Error("NotifyOrderPlaced failed", "orderId", input.ID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, notifyHeartbeat{Completed: true})
	logger.Info("NotifyOrderPlaced activity completed", "orderId", input.ID)
	return nil
}

type notifyHeartbeat struct {
	Completed bool
}
