package provider_test

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/observability"
	"github.com/kbukum/slaybot/provider"
	"github.com/kbukum/slaybot/resilience"
	"go.opentelemetry.io/otel/metric/noop"
)

// scriptedProvider fails the first `failures` calls, then echoes its input.
type scriptedProvider struct {
	name     string
	failures int32
	calls    atomic.Int32
}

func (p *scriptedProvider) Name() string                     { return p.name }
func (p *scriptedProvider) IsAvailable(context.Context) bool { return true }

func (p *scriptedProvider) Execute(_ context.Context, in string) (string, error) {
	if p.calls.Add(1) <= p.failures {
		return "", errors.New("transient")
	}
	return "echo:" + in, nil
}

type orderTracker struct {
	inner provider.RequestResponse[string, string]
	tag   string
	order *[]string
}

func (o *orderTracker) Name() string                         { return o.inner.Name() }
func (o *orderTracker) IsAvailable(ctx context.Context) bool { return o.inner.IsAvailable(ctx) }
func (o *orderTracker) Execute(ctx context.Context, in string) (string, error) {
	*o.order = append(*o.order, o.tag+":before")
	out, err := o.inner.Execute(ctx, in)
	*o.order = append(*o.order, o.tag+":after")
	return out, err
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(tag string) provider.Middleware[string, string] {
		return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
			return &orderTracker{inner: inner, tag: tag, order: &order}
		}
	}

	wrapped := provider.Chain(mw("A"), mw("B"))(&scriptedProvider{name: "p"})
	if _, err := wrapped.Execute(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "B:after", "A:after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestChain_StandardMiddlewaresKeepName(t *testing.T) {
	metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatal(err)
	}
	wrapped := provider.Chain(
		provider.WithLogging[string, string](logger.Nop()),
		provider.WithMetrics[string, string](metrics),
		provider.WithTracing[string, string]("rephrase"),
	)(&scriptedProvider{name: "mistral"})

	if wrapped.Name() != "mistral" {
		t.Errorf("expected name to pass through, got %q", wrapped.Name())
	}
	out, err := wrapped.Execute(context.Background(), "hi")
	if err != nil || out != "echo:hi" {
		t.Errorf("expected echo:hi, got %q / %v", out, err)
	}
}

func TestFunc(t *testing.T) {
	p := provider.Func("len", func(_ context.Context, s string) (int, error) { return len(s), nil })
	n, err := p.Execute(context.Background(), "four")
	if err != nil || n != 4 || p.Name() != "len" || !p.IsAvailable(context.Background()) {
		t.Errorf("unexpected func provider behavior: %d / %v", n, err)
	}
}

func TestAdapt(t *testing.T) {
	backend := provider.Func("backend", func(_ context.Context, n int) (int, error) { return n * 2, nil })
	adapted := provider.Adapt(backend, "doubler",
		func(_ context.Context, s string) (int, error) { return strconv.Atoi(s) },
		func(n int) (string, error) { return strconv.Itoa(n), nil },
	)

	if adapted.Name() != "doubler" {
		t.Errorf("expected adapted name, got %q", adapted.Name())
	}
	out, err := adapted.Execute(context.Background(), "21")
	if err != nil || out != "42" {
		t.Errorf("expected 42, got %q / %v", out, err)
	}
	if _, err := adapted.Execute(context.Background(), "nope"); err == nil {
		t.Error("expected mapIn error to surface")
	}
}

func TestWithTimeout(t *testing.T) {
	slow := provider.Func("slow", func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	_, err := provider.WithTimeout[string, string](10*time.Millisecond)(slow).Execute(context.Background(), "x")
	if !goerrors.HasCode(err, goerrors.ErrCodeTimeout) {
		t.Errorf("expected TIMEOUT, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = provider.WithTimeout[string, string](time.Second)(slow).Execute(ctx, "x")
	if !errors.Is(err, context.Canceled) || goerrors.HasCode(err, goerrors.ErrCodeTimeout) {
		t.Errorf("expected parent cancellation to pass through, got %v", err)
	}

	if provider.WithTimeout[string, string](0)(slow) != slow {
		t.Error("expected zero timeout to return the provider unchanged")
	}
}

func TestWithResilience_Retry(t *testing.T) {
	p := &scriptedProvider{name: "grok", failures: 1}
	wrapped := provider.WithResilience[string, string](provider.ResilienceConfig{
		Retry: &resilience.RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond},
	})(p)

	out, err := wrapped.Execute(context.Background(), "x")
	if err != nil || out != "echo:x" {
		t.Errorf("expected success on second attempt, got %q / %v", out, err)
	}
	if p.calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", p.calls.Load())
	}
}

func TestWithResilience_CircuitOpens(t *testing.T) {
	p := &scriptedProvider{name: "gigachat", failures: 100}
	wrapped := provider.WithResilience[string, string](provider.ResilienceConfig{
		CircuitBreaker: &resilience.CircuitBreakerConfig{Name: "gigachat", MaxFailures: 2, Timeout: time.Hour},
	})(p)

	for i := 0; i < 2; i++ {
		_, _ = wrapped.Execute(context.Background(), "x")
	}
	if wrapped.IsAvailable(context.Background()) {
		t.Error("expected provider to be unavailable while circuit is open")
	}
	_, err := wrapped.Execute(context.Background(), "x")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if p.calls.Load() != 2 {
		t.Errorf("expected open circuit to skip the call, got %d calls", p.calls.Load())
	}
}

func TestWithResilience_EmptyIsPassthrough(t *testing.T) {
	p := &scriptedProvider{name: "p"}
	if provider.WithResilience[string, string](provider.ResilienceConfig{})(p) != provider.RequestResponse[string, string](p) {
		t.Error("expected empty config to return the provider unchanged")
	}
}
