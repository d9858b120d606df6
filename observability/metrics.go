// Package observability exposes solve metrics through OpenTelemetry with a
// Prometheus exporter.
package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the solve instruments. It satisfies solver.Recorder.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter

	SolveDuration metric.Float64Histogram
	SolvesTotal   metric.Int64Counter
	NodesTotal    metric.Int64Counter
}

// NewMetrics creates the instruments on a private Prometheus registry and
// returns the handler that serves it.
func NewMetrics(_ context.Context) (*Metrics, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter("rpq")
	m := &Metrics{provider: provider, meter: meter}

	m.SolveDuration, err = meter.Float64Histogram(
		"rpq_solve_duration",
		metric.WithDescription("Wall-clock duration of one engine solve"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300),
	)
	if err != nil {
		return nil, nil, err
	}

	m.SolvesTotal, err = meter.Int64Counter(
		"rpq_solves",
		metric.WithDescription("Solves by engine and final status"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.NodesTotal, err = meter.Int64Counter(
		"rpq_search_nodes",
		metric.WithDescription("Search nodes explored by engine"),
	)
	if err != nil {
		return nil, nil, err
	}

	return m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// RecordSolve records one finished solve.
func (m *Metrics) RecordSolve(ctx context.Context, engine, status string, seconds float64, nodes int) {
	attrs := metric.WithAttributes(engineAttr(engine), statusAttr(status))

	m.SolveDuration.Record(ctx, seconds, metric.WithAttributes(engineAttr(engine)))
	m.SolvesTotal.Add(ctx, 1, attrs)
	m.NodesTotal.Add(ctx, int64(nodes), metric.WithAttributes(engineAttr(engine)))
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
