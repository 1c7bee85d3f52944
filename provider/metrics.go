package provider

import (
	"context"
	"time"

	"github.com/kbukum/slaybot/observability"
)

// WithMetrics records call count and duration per provider.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{wrapped: wrapped[I, O]{inner}, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	wrapped[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.metrics.RecordProviderCall(ctx, m.inner.Name(), status, time.Since(start))
	return output, err
}
