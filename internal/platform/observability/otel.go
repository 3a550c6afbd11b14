package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Instruments bundles the process-wide observability dependencies handed to
// the service decorators.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Init configures slog and the OpenTelemetry trace/metric providers. The
// returned shutdown function flushes pending spans and metrics and should run
// on exit. A missing OTLP endpoint degrades to a stdout trace exporter so
// local runs still produce spans.
func Init(ctx context.Context, serviceName string) (*Instruments, func(context.Context) error, error) {
	logger := newLogger()

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("deployment.environment", envOrDefault("ENVIRONMENT", "development")),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	spanExporter, err := newSpanExporter(ctx, logger)
	if err != nil {
		return nil, nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(spanExporter),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)
	otel.SetMeterProvider(meterProvider)

	instruments := &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			meterProvider.Shutdown(ctx),
			tracerProvider.Shutdown(ctx),
		)
	}

	return instruments, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// newLogger builds the process JSON logger and installs it as the slog
// default. LOG_LEVEL accepts debug/info/warn/error.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func newSpanExporter(ctx context.Context, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	opts := []otlptracehttp.Option{}
	if endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	if logger != nil {
		logger.Warn("otlp trace exporter unavailable, using stdout",
			slog.String("error", err.Error()))
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
