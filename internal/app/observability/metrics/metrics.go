package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal        metric.Int64Counter
	HTTPRequestDuration      metric.Float64Histogram
	AuthRequestsTotal        metric.Int64Counter
	GateDecisionsTotal       metric.Int64Counter
	DashboardFetchesTotal    metric.Int64Counter
	DashboardFetchDuration   metric.Float64Histogram
	StaleResultsDiscarded    metric.Int64Counter
	BackendRequestDuration   metric.Float64Histogram
	TemplateRenderDuration   metric.Float64Histogram
	ActiveDashboardViewGauge metric.Int64UpDownCounter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
// Call it after the provider is installed; before that the instruments are
// no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("edudash")
		m := &AppMetrics{}
		var err error

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		must(err, "http_requests_total")

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		must(err, "http_request_duration_seconds")

		m.AuthRequestsTotal, err = meter.Int64Counter(
			"auth_requests_total",
			metric.WithDescription("Total number of login, signup and logout requests"),
			metric.WithUnit("{request}"),
		)
		must(err, "auth_requests_total")

		m.GateDecisionsTotal, err = meter.Int64Counter(
			"gate_decisions_total",
			metric.WithDescription("Route gate decisions by outcome"),
			metric.WithUnit("{decision}"),
		)
		must(err, "gate_decisions_total")

		m.DashboardFetchesTotal, err = meter.Int64Counter(
			"dashboard_fetches_total",
			metric.WithDescription("Dashboard payload fetches by role and result"),
			metric.WithUnit("{fetch}"),
		)
		must(err, "dashboard_fetches_total")

		m.DashboardFetchDuration, err = meter.Float64Histogram(
			"dashboard_fetch_duration_seconds",
			metric.WithDescription("Duration of dashboard payload fetches"),
			metric.WithUnit("s"),
		)
		must(err, "dashboard_fetch_duration_seconds")

		m.StaleResultsDiscarded, err = meter.Int64Counter(
			"dashboard_stale_results_total",
			metric.WithDescription("Fetch results dropped because a newer mount superseded them"),
			metric.WithUnit("{result}"),
		)
		must(err, "dashboard_stale_results_total")

		m.BackendRequestDuration, err = meter.Float64Histogram(
			"backend_request_duration_seconds",
			metric.WithDescription("Duration of calls to the REST backend"),
			metric.WithUnit("s"),
		)
		must(err, "backend_request_duration_seconds")

		m.TemplateRenderDuration, err = meter.Float64Histogram(
			"template_render_duration_seconds",
			metric.WithDescription("Duration of template rendering in seconds"),
			metric.WithUnit("s"),
		)
		must(err, "template_render_duration_seconds")

		m.ActiveDashboardViewGauge, err = meter.Int64UpDownCounter(
			"dashboard_views_active",
			metric.WithDescription("Client views currently held by the layout manager"),
			metric.WithUnit("{view}"),
		)
		must(err, "dashboard_views_active")

		appMetrics = m
	})
}

func must(err error, name string) {
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
}

// Get returns the instruments, initialising them against whatever provider
// is installed if InitAppMetrics has not run yet.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// Count adds one to counter with the given string attributes as key/value pairs.
func Count(ctx context.Context, counter metric.Int64Counter, kv ...string) {
	counter.Add(ctx, 1, metric.WithAttributes(attrs(kv)...))
}

// Observe records seconds on histogram with key/value attributes.
func Observe(ctx context.Context, histogram metric.Float64Histogram, seconds float64, kv ...string) {
	histogram.Record(ctx, seconds, metric.WithAttributes(attrs(kv)...))
}

func attrs(kv []string) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, attribute.String(kv[i], kv[i+1]))
	}
	return out
}
