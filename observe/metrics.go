package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics records memoization and hashing activity.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording never fails; counter construction errors surface from
//   NewMetrics only.
type Metrics struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
}

// NewMetrics creates a Metrics instance on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	hits, err := meter.Int64Counter(
		"canonkey.memo.hits",
		metric.WithDescription("Memoized reads served from a cache slot"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, err
	}
	misses, err := meter.Int64Counter(
		"canonkey.memo.misses",
		metric.WithDescription("Memoized reads that ran the underlying computation"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, err
	}
	return &Metrics{hits: hits, misses: misses}, nil
}

// Nop returns a Metrics instance that records nothing.
func Nop() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("canonkey"))
	return m
}

// RecordHit counts a read served from a cache slot.
func (m *Metrics) RecordHit(ctx context.Context, typeName, attr string) {
	if m == nil {
		return
	}
	m.hits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", typeName),
		attribute.String("attr", attr),
	))
}

// RecordMiss counts a read that ran the underlying computation.
func (m *Metrics) RecordMiss(ctx context.Context, typeName, attr string) {
	if m == nil {
		return
	}
	m.misses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", typeName),
		attribute.String("attr", attr),
	))
}
