package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ServiceName = "fiipulse"
	MeterName   = "fiipulse"
)

// OTelProviders holds the OpenTelemetry metric provider and the Prometheus
// scrape handler. The core opens no sockets itself; callers that want a
// /metrics endpoint serve PrometheusHTTP on their own listener.
type OTelProviders struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
}

// InitializeOTel sets up the OpenTelemetry meter provider with a Prometheus
// exporter and registers it globally.
func InitializeOTel(logger *slog.Logger) (*OTelProviders, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	logger.Info("OpenTelemetry metrics initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))

	return &OTelProviders{
		MeterProvider:  provider,
		Meter:          provider.Meter(MeterName),
		PrometheusHTTP: promhttp.Handler(),
	}, nil
}

// Metrics holds the acquisition core's instruments. The record helpers below
// are nil-safe so library packages can take an optional *Metrics.
type Metrics struct {
	FetchRequests    metric.Int64Counter
	FetchRetries     metric.Int64Counter
	FetchFailures    metric.Int64Counter
	ExtractionMisses metric.Int64Counter
	EntitiesScanned  metric.Int64Counter
	ScanDuration     metric.Float64Histogram
}

// NewMetrics creates the acquisition instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.FetchRequests, err = meter.Int64Counter("fiipulse_fetch_requests_total",
		metric.WithDescription("HTTP requests issued to sources")); err != nil {
		return nil, fmt.Errorf("failed to create fetch_requests counter: %w", err)
	}
	if m.FetchRetries, err = meter.Int64Counter("fiipulse_fetch_retries_total",
		metric.WithDescription("HTTP requests retried after a transient fault")); err != nil {
		return nil, fmt.Errorf("failed to create fetch_retries counter: %w", err)
	}
	if m.FetchFailures, err = meter.Int64Counter("fiipulse_fetch_failures_total",
		metric.WithDescription("Source fetches that exhausted the retry budget")); err != nil {
		return nil, fmt.Errorf("failed to create fetch_failures counter: %w", err)
	}
	if m.ExtractionMisses, err = meter.Int64Counter("fiipulse_extraction_misses_total",
		metric.WithDescription("Indicators a source page did not yield")); err != nil {
		return nil, fmt.Errorf("failed to create extraction_misses counter: %w", err)
	}
	if m.EntitiesScanned, err = meter.Int64Counter("fiipulse_entities_scanned_total",
		metric.WithDescription("Funds processed by the scheduler")); err != nil {
		return nil, fmt.Errorf("failed to create entities_scanned counter: %w", err)
	}
	if m.ScanDuration, err = meter.Float64Histogram("fiipulse_scan_duration_seconds",
		metric.WithDescription("Wall time of whole scheduler runs"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("failed to create scan_duration histogram: %w", err)
	}

	return m, nil
}

// RecordFetchRequest counts one HTTP request against a source.
func (m *Metrics) RecordFetchRequest(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.FetchRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordFetchRetry counts one retried request against a source.
func (m *Metrics) RecordFetchRetry(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.FetchRetries.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordFetchFailure counts one fetch that exhausted its retry budget.
func (m *Metrics) RecordFetchFailure(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.FetchFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordExtractionMiss counts an indicator a source did not yield.
func (m *Metrics) RecordExtractionMiss(ctx context.Context, source, indicator string) {
	if m == nil {
		return
	}
	m.ExtractionMisses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("indicator", indicator),
	))
}

// RecordEntityScanned counts one fund processed by the scheduler.
func (m *Metrics) RecordEntityScanned(ctx context.Context) {
	if m == nil {
		return
	}
	m.EntitiesScanned.Add(ctx, 1)
}

// RecordScanDuration records the wall time of a whole scheduler run.
func (m *Metrics) RecordScanDuration(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.ScanDuration.Record(ctx, seconds)
}
