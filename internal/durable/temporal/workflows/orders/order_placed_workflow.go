package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/azaconnect/maintenance-api/internal/durable/temporal/sequences"
)

const (
	// OrderPlacedWorkflowName is the public identifier for registering the workflow.
	OrderPlacedWorkflowName = "procurement.workflows.OrderPlaced"
	// OrderNotificationTaskQueue is the queue consumed by the worker processing order notifications.
	OrderNotificationTaskQueue = "ORDER_NOTIFICATIONS"
)

// OrderPlacedWorkflowInput captures the payload needed to alert the purchasing team.
type OrderPlacedWorkflowInput struct {
	OrderID int64
	TraceID string
}

// OrderPlacedWorkflow orchestrates the activities that notify stakeholders
// about a freshly placed order.
func OrderPlacedWorkflow(ctx workflow.Context, input OrderPlacedWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacedWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	if err := sequences.RunOrderNotificationSequence(ctx, input.OrderID); err != nil {
		logger.Error("OrderPlacedWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return err
	}
	logger.Info("OrderPlacedWorkflow completed", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
