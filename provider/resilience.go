package provider

import (
	"context"

	"github.com/kbukum/slaybot/resilience"
)

// ResilienceConfig bundles optional resilience policies for a provider.
// Nil fields are skipped.
type ResilienceConfig struct {
	// CircuitBreaker stops calling a provider after repeated errors.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
	// Retry retries failed calls with exponential backoff.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// IsEmpty returns true if no resilience policies are configured.
func (c ResilienceConfig) IsEmpty() bool {
	return c.CircuitBreaker == nil && c.Retry == nil
}

// WithResilience applies retry inside a circuit breaker: a call counts once
// against the breaker no matter how many attempts it took.
func WithResilience[I, O any](cfg ResilienceConfig) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		if cfg.IsEmpty() {
			return inner
		}
		r := &resilientRR[I, O]{wrapped: wrapped[I, O]{inner}, retry: cfg.Retry}
		if cfg.CircuitBreaker != nil {
			r.cb = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
		}
		return r
	}
}

type resilientRR[I, O any] struct {
	wrapped[I, O]
	cb    *resilience.CircuitBreaker
	retry *resilience.RetryConfig
}

// IsAvailable is false while the circuit is open.
func (r *resilientRR[I, O]) IsAvailable(ctx context.Context) bool {
	if r.cb != nil && r.cb.State() == resilience.StateOpen {
		return false
	}
	return r.inner.IsAvailable(ctx)
}

func (r *resilientRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	call := func() (O, error) { return r.inner.Execute(ctx, input) }
	if r.retry != nil {
		cfg := *r.retry
		call = func() (O, error) {
			return resilience.Retry(ctx, cfg, func() (O, error) { return r.inner.Execute(ctx, input) })
		}
	}
	if r.cb == nil {
		return call()
	}

	var output O
	err := r.cb.Execute(func() error {
		var callErr error
		output, callErr = call()
		return callErr
	})
	return output, err
}
