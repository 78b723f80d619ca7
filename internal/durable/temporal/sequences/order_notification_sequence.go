package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/azaconnect/maintenance-api/internal/durable/temporal/activities/orders"
)

// RunOrderNotificationSequence executes the ordered set of activities that
// alert stakeholders about a placed order.
func RunOrderNotificationSequence(ctx workflow.Context, orderID int64) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("order notification sequence started", "orderId", orderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	err := workflow.ExecuteActivity(ctx, orderactivities.NotifyOrderPlacedActivityName, orderactivities.OrderIdentifier{ID: orderID}).Get(ctx, nil)
	if err != nil {
		logger.Error("order notification sequence failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("order notification sequence completed", "orderId", orderID)
	return nil
}
