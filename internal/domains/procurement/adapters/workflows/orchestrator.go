package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
	orderworkflows "github.com/azaconnect/maintenance-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.Notifier = (*TemporalOrderNotifications)(nil)
	_ ports.Notifier = (*InlineOrderNotifications)(nil)
)

// TemporalOrderNotifications delivers order alerts through a durable workflow.
type TemporalOrderNotifications struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderNotifications wires a Temporal client into the orchestrator.
func NewTemporalOrderNotifications(c client.Client) *TemporalOrderNotifications {
	return &TemporalOrderNotifications{client: c, taskQueue: orderworkflows.OrderNotificationTaskQueue}
}

// OrderPlaced starts the notification workflow. The workflow runs
// asynchronously so order placement never waits on delivery.
func (o *TemporalOrderNotifications) OrderPlaced(ctx context.Context, order *domain.Order) error {
	if o == nil || o.client == nil {
		return errors.New("temporal order notifications not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-placed-%d", order.ID),
		TaskQueue: o.taskQueue,
	}
	_, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacedWorkflow,
		orderworkflows.OrderPlacedWorkflowInput{OrderID: order.ID, TraceID: traceComponent},
	)
	if err != nil {
		// A second placement attempt for the same order already queued the
		// alert; treat that as success.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// InlineOrderNotifications delivers alerts synchronously without Temporal,
// useful for tests or dev fallbacks.
type InlineOrderNotifications struct {
	delegate ports.Notifier
}

// NewInlineOrderNotifications wraps a notifier for synchronous delivery.
func NewInlineOrderNotifications(delegate ports.Notifier) *InlineOrderNotifications {
	return &InlineOrderNotifications{delegate: delegate}
}

// OrderPlaced delegates to the underlying notifier without durable orchestration.
func (o *InlineOrderNotifications) OrderPlaced(ctx context.Context, order *domain.Order) error {
	if o == nil || o.delegate == nil {
		return errors.New("inline order notifications not configured")
	}
	return o.delegate.OrderPlaced(ctx, order)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
