package provider

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/kbukum/slaybot/errors"
)

// WithTimeout bounds each Execute call. A call that runs past d returns a
// TIMEOUT error; cancellation of the parent context is passed through as is.
// A non-positive d disables the bound.
func WithTimeout[I, O any](d time.Duration) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		if d <= 0 {
			return inner
		}
		return &timeoutRR[I, O]{wrapped: wrapped[I, O]{inner}, timeout: d}
	}
}

type timeoutRR[I, O any] struct {
	wrapped[I, O]
	timeout time.Duration
}

func (t *timeoutRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	output, err := t.inner.Execute(callCtx, input)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return output, goerrors.Timeout(t.inner.Name()).WithCause(err)
	}
	return output, err
}
