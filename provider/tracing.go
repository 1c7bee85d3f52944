package provider

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/slaybot/observability"
)

// WithTracing wraps each Execute call in a span named "{operation}.{provider}".
func WithTracing[I, O any](operation string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{wrapped: wrapped[I, O]{inner}, operation: operation}
	}
}

type tracingRR[I, O any] struct {
	wrapped[I, O]
	operation string
}

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, t.operation+"."+t.inner.Name(),
		attribute.String(observability.AttrProvider, t.inner.Name()))
	defer span.End()

	output, err := t.inner.Execute(ctx, input)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return output, err
}
