package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
)

const tracerName = "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and
// metrics.
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

// CreateOrder creates an order with instrumentation.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateOrder",
		attribute.String("customer.id", input.CustomerID.String()),
		attribute.Int("order.item_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("customer.id", input.CustomerID.String()))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order",
			slog.String("customer.id", input.CustomerID.String()))
	}
	s.metrics.recordCreated(ctx, result.Status)
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID.String()),
		slog.String("order.number", result.Number),
		slog.String("order.total", result.TotalAmount.String()),
	)
	return result, nil
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.String("order.id", id.String()))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get order", slog.String("order.id", id.String()))
	}
	return result, nil
}

// ListOrders returns a filtered order page.
func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders")
	defer span.End()

	result, total, err := s.inner.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, total, nil
}

// UpdateOrder applies a lifecycle update with instrumentation.
func (s *Service) UpdateOrder(ctx context.Context, id uuid.UUID, input ports.UpdateOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateOrder", attribute.String("order.id", id.String()))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", id.String()))
	result, err := s.inner.UpdateOrder(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", id.String()))
	}
	s.metrics.recordUpdated(ctx, result.Status)
	s.logInfo(ctx, "order updated",
		slog.String("order.id", result.ID.String()),
		slog.String("order.status", string(result.Status)),
	)
	return result, nil
}

// DeleteOrder removes an order with instrumentation.
func (s *Service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteOrder", attribute.String("order.id", id.String()))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id.String()))
	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id.String()))
	}
	s.metrics.recordDeleted(ctx)
	return nil
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
	ordersCreated metric.Int64Counter
	ordersUpdated metric.Int64Counter
	ordersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	ordersUpdated, _ := m.Int64Counter("orders.service.updated", metric.WithDescription("Number of orders updated"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{
		ordersCreated: ordersCreated,
		ordersUpdated: ordersUpdated,
		ordersDeleted: ordersDeleted,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersCreated, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersUpdated, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.ordersDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
