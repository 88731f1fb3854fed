package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	catalogWrites    metric.Int64Counter
	reconcileRuns    metric.Int64Counter
	reconcileRows    metric.Int64Counter
	referenceLookups metric.Int64Counter
	rateLimitDenied  metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "catalogd"
	}
	meter := provider.Meter(name)

	catalogWrites, err := meter.Int64Counter("catalog_writes_total")
	if err != nil {
		return nil, err
	}
	reconcileRuns, err := meter.Int64Counter("catalog_reconcile_runs_total")
	if err != nil {
		return nil, err
	}
	reconcileRows, err := meter.Int64Counter("catalog_reconcile_rows_total")
	if err != nil {
		return nil, err
	}
	referenceLookups, err := meter.Int64Counter("catalog_reference_lookups_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("catalog_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		catalogWrites:    catalogWrites,
		reconcileRuns:    reconcileRuns,
		reconcileRows:    reconcileRows,
		referenceLookups: referenceLookups,
		rateLimitDenied:  rateLimitDenied,
	}, nil
}

// RecordWrite increments catalog write counts per entity.
func (m *Metrics) RecordWrite(ctx context.Context, entity, op string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("entity", strings.TrimSpace(entity)),
		attribute.String("op", strings.TrimSpace(op)),
	)
	m.catalogWrites.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordReconcile records one reconciliation run and its row deltas.
func (m *Metrics) RecordReconcile(ctx context.Context, target string, inserted, updated, deleted int) {
	if m == nil {
		return
	}
	base := attribute.String("target", strings.TrimSpace(target))
	m.reconcileRuns.Add(ctx, 1, metric.WithAttributes(FilterAttributes(base)...))
	for op, count := range map[string]int{"insert": inserted, "update": updated, "delete": deleted} {
		if count == 0 {
			continue
		}
		attrs := FilterAttributes(base, attribute.String("op", op))
		m.reconcileRows.Add(ctx, int64(count), metric.WithAttributes(attrs...))
	}
}

// RecordReferenceLookup counts enum lookups and whether the cache served them.
func (m *Metrics) RecordReferenceLookup(ctx context.Context, enumType string, cacheHit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if cacheHit {
		result = "hit"
	}
	attrs := FilterAttributes(
		attribute.String("enum_type", strings.TrimSpace(enumType)),
		attribute.String("result", result),
	)
	m.referenceLookups.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitDenied increments rate limit deny counts.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"entity":      {},
	"op":          {},
	"target":      {},
	"enum_type":   {},
	"result":      {},
	"endpoint":    {},
	"reason":      {},
	"status_code": {},
	"method":      {},
	"route":       {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
