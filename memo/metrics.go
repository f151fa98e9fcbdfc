package memo

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentation is the otel instrumentation scope for this package.
const instrumentation = "github.com/kestrelops/memocache/memo"

// engineMetrics records cache protocol outcomes.
type engineMetrics struct {
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	writeFailures metric.Int64Counter
	computeMS     metric.Float64Histogram
}

func newEngineMetrics(meter metric.Meter) (*engineMetrics, error) {
	hits, err := meter.Int64Counter(
		"memo.hits",
		metric.WithDescription("Invocations answered from the durable store"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"memo.misses",
		metric.WithDescription("Invocations that ran the wrapped operation"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	writeFailures, err := meter.Int64Counter(
		"memo.write_failures",
		metric.WithDescription("Background persistence attempts that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	computeMS, err := meter.Float64Histogram(
		"memo.compute.duration_ms",
		metric.WithDescription("Wrapped operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &engineMetrics{
		hits:          hits,
		misses:        misses,
		writeFailures: writeFailures,
		computeMS:     computeMS,
	}, nil
}

func (m *engineMetrics) hit(ctx context.Context, key string) {
	m.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("memo.key", key)))
}

func (m *engineMetrics) miss(ctx context.Context, key string) {
	m.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("memo.key", key)))
}

func (m *engineMetrics) writeFailure(ctx context.Context, key string) {
	m.writeFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("memo.key", key)))
}

func (m *engineMetrics) compute(ctx context.Context, key string, d time.Duration) {
	m.computeMS.Record(ctx, float64(d)/float64(time.Millisecond),
		metric.WithAttributes(attribute.String("memo.key", key)))
}
