package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
)

const tracerName = "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/observability/service"

// Service decorates the procurement application port with tracing,
// logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateOrder",
		attribute.String("order.number", input.Number),
		attribute.Int("order.items", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("order.number", input.Number), slog.Int("items", len(input.Items)))
	order, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("order.number", input.Number))
	}
	s.metrics.recordOrderPlaced(ctx)
	s.logInfo(ctx, "order created", slog.Int64("order.id", order.ID), slog.String("order.number", order.Number))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.Int64("order.id", id))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders")
	defer span.End()

	orders, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(orders)))
	return orders, nil
}

func (s *Service) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.CancelOrder", attribute.Int64("order.id", orderID))
	defer span.End()

	s.logInfo(ctx, "canceling order", slog.Int64("order.id", orderID))
	order, err := s.inner.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", orderID))
	}
	s.metrics.recordOrderCanceled(ctx)
	s.logInfo(ctx, "order canceled", slog.Int64("order.id", orderID))
	return order, nil
}

func (s *Service) RefreshOrderStatus(ctx context.Context, orderID int64) (domain.OrderStatus, error) {
	ctx, span := s.startSpan(ctx, "Service.RefreshOrderStatus", attribute.Int64("order.id", orderID))
	defer span.End()

	status, err := s.inner.RefreshOrderStatus(ctx, orderID)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to refresh order status", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.String("order.status", string(status)))
	return status, nil
}

func (s *Service) GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.GetItem", attribute.Int64("item.id", itemID))
	defer span.End()

	item, err := s.inner.GetItem(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.Int64("item.id", itemID))
	}
	return item, nil
}

func (s *Service) ApproveItem(ctx context.Context, itemID int64, quantity *decimal.Decimal) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.ApproveItem", attribute.Int64("item.id", itemID))
	defer span.End()

	s.logInfo(ctx, "approving item", slog.Int64("item.id", itemID))
	item, err := s.inner.ApproveItem(ctx, itemID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to approve item", slog.Int64("item.id", itemID))
	}
	s.logItem(ctx, "item approved", item)
	return item, nil
}

func (s *Service) RejectItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.RejectItem", attribute.Int64("item.id", itemID))
	defer span.End()

	item, err := s.inner.RejectItem(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to reject item", slog.Int64("item.id", itemID))
	}
	s.logItem(ctx, "item rejected", item)
	return item, nil
}

func (s *Service) PurchaseItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.PurchaseItem", attribute.Int64("item.id", itemID))
	defer span.End()

	item, err := s.inner.PurchaseItem(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark item purchased", slog.Int64("item.id", itemID))
	}
	s.logItem(ctx, "item purchased", item)
	return item, nil
}

func (s *Service) CancelItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.CancelItem", attribute.Int64("item.id", itemID))
	defer span.End()

	item, err := s.inner.CancelItem(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel item", slog.Int64("item.id", itemID))
	}
	s.logItem(ctx, "item canceled", item)
	return item, nil
}

func (s *Service) ReceiveItem(ctx context.Context, input ports.ReceiveItemInput) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.ReceiveItem",
		attribute.Int64("item.id", input.ItemID),
		attribute.String("receipt.quantity", input.Quantity.String()),
		attribute.String("receipt.condition", string(input.Condition)),
	)
	defer span.End()

	s.logInfo(ctx, "recording receipt", slog.Int64("item.id", input.ItemID), slog.String("quantity", input.Quantity.String()))
	item, err := s.inner.ReceiveItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to record receipt", slog.Int64("item.id", input.ItemID))
	}
	s.metrics.recordReceipt(ctx, item.Status)
	s.logItem(ctx, "receipt recorded", item)
	return item, nil
}

func (s *Service) UndoReceive(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.UndoReceive", attribute.Int64("item.id", itemID))
	defer span.End()

	s.logInfo(ctx, "undoing receipt", slog.Int64("item.id", itemID))
	item, err := s.inner.UndoReceive(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to undo receipt", slog.Int64("item.id", itemID))
	}
	s.metrics.recordUndo(ctx)
	s.logItem(ctx, "receipt undone", item)
	return item, nil
}

func (s *Service) EditApprovedQuantity(ctx context.Context, itemID int64, quantity decimal.Decimal) (*domain.OrderItem, error) {
	ctx, span := s.startSpan(ctx, "Service.EditApprovedQuantity",
		attribute.Int64("item.id", itemID),
		attribute.String("item.approved_quantity", quantity.String()),
	)
	defer span.End()

	item, err := s.inner.EditApprovedQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit approved quantity", slog.Int64("item.id", itemID))
	}
	s.logItem(ctx, "approved quantity updated", item)
	return item, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logItem(ctx context.Context, msg string, item *domain.OrderItem) {
	if item == nil {
		return
	}
	s.logInfo(ctx, msg,
		slog.Int64("item.id", item.ID),
		slog.Int64("order.id", item.OrderID),
		slog.String("status", string(item.Status)),
	)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersCanceled metric.Int64Counter
	receipts       metric.Int64Counter
	undos          metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("procurement.service.orders_placed", metric.WithDescription("Number of orders placed"))
	ordersCanceled, _ := m.Int64Counter("procurement.service.orders_canceled", metric.WithDescription("Number of orders canceled"))
	receipts, _ := m.Int64Counter("procurement.service.receipts_recorded", metric.WithDescription("Number of receipt events recorded"))
	undos, _ := m.Int64Counter("procurement.service.receipts_undone", metric.WithDescription("Number of undo-receive operations"))
	return serviceMetrics{
		ordersPlaced:   ordersPlaced,
		ordersCanceled: ordersCanceled,
		receipts:       receipts,
		undos:          undos,
	}
}

func (m serviceMetrics) recordOrderPlaced(ctx context.Context) {
	addCounter(ctx, m.ordersPlaced, 1)
}

func (m serviceMetrics) recordOrderCanceled(ctx context.Context) {
	addCounter(ctx, m.ordersCanceled, 1)
}

func (m serviceMetrics) recordReceipt(ctx context.Context, status domain.ItemStatus) {
	addCounter(ctx, m.receipts, 1, attribute.String("item.status", string(status)))
}

func (m serviceMetrics) recordUndo(ctx context.Context) {
	addCounter(ctx, m.undos, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
