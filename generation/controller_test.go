package generation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/provider"
)

type fakeRephraser struct {
	name      string
	calls     atomic.Int32
	err       error
	delay     time.Duration
	available bool
}

func newFake(name string, err error) *fakeRephraser {
	return &fakeRephraser{name: name, err: err, available: true}
}

func (f *fakeRephraser) Name() string                     { return f.name }
func (f *fakeRephraser) IsAvailable(context.Context) bool { return f.available }

func (f *fakeRephraser) Execute(ctx context.Context, input string) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.name + ":" + input, nil
}

func inOrder(n int, swap func(i, j int)) {}

func newTestController(t *testing.T, cfg Config, pool ...Rephraser) *Controller {
	t.Helper()
	c, err := NewController(pool, cfg)
	if err != nil {
		t.Fatalf("NewController() error: %v", err)
	}
	c.shuffle = inOrder
	return c
}

func TestGenerate_NoProviders(t *testing.T) {
	c := newTestController(t, DefaultConfig())
	_, err := c.Generate(context.Background(), "hi")
	if !goerrors.HasCode(err, goerrors.ErrCodeNoProviders) {
		t.Errorf("expected NO_PROVIDERS, got %v", err)
	}
}

func TestGenerate_FirstSuccessWins(t *testing.T) {
	a := newFake("a", errors.New("down"))
	b := newFake("b", nil)
	cc := newFake("c", nil)
	c := newTestController(t, DefaultConfig(), a, b, cc)

	res, err := c.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if res.Text != "b:hi" || res.Provider != "b" {
		t.Errorf("result = %+v", res)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 1 || cc.calls.Load() != 0 {
		t.Errorf("calls a=%d b=%d c=%d", a.calls.Load(), b.calls.Load(), cc.calls.Load())
	}

	provider, ok := c.MessageInfo("b:hi")
	if !ok || provider != "b" {
		t.Errorf("MessageInfo() = %q, %v", provider, ok)
	}
}

func TestGenerate_AllFailed(t *testing.T) {
	errA, errB := errors.New("a broke"), errors.New("b broke")
	c := newTestController(t, DefaultConfig(), newFake("a", errA), newFake("b", errB))

	_, err := c.Generate(context.Background(), "hi")
	if !goerrors.HasCode(err, goerrors.ErrCodeAllProvidersFailed) {
		t.Fatalf("expected ALL_PROVIDERS_FAILED, got %v", err)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("error does not wrap provider errors: %v", err)
	}
	if c.History().Len() != 0 {
		t.Error("failed generation reached history")
	}
}

func TestGenerate_TimeoutIsOrdinaryFailure(t *testing.T) {
	slow := newFake("slow", nil)
	slow.delay = time.Second
	fast := newFake("fast", nil)

	cfg := DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond
	c := newTestController(t, cfg, slow, fast)

	res, err := c.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if res.Provider != "fast" {
		t.Errorf("provider = %q, want fast", res.Provider)
	}
}

func TestGenerate_CanceledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := &cancelingRephraser{cancel: cancel}
	second := newFake("second", nil)
	c := newTestController(t, DefaultConfig(), first, second)

	_, err := c.Generate(ctx, "hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if second.calls.Load() != 0 {
		t.Error("loop continued after cancellation")
	}
}

type cancelingRephraser struct{ cancel context.CancelFunc }

func (r *cancelingRephraser) Name() string                     { return "canceling" }
func (r *cancelingRephraser) IsAvailable(context.Context) bool { return true }
func (r *cancelingRephraser) Execute(context.Context, string) (string, error) {
	r.cancel()
	return "", errors.New("interrupted")
}

func TestGenerate_SkipsUnavailable(t *testing.T) {
	down := newFake("down", nil)
	down.available = false
	up := newFake("up", nil)
	c := newTestController(t, DefaultConfig(), down, up)

	res, err := c.Generate(context.Background(), "x")
	if err != nil || res.Provider != "up" {
		t.Fatalf("Generate() = %+v, %v", res, err)
	}
	if down.calls.Load() != 0 {
		t.Error("unavailable provider was called")
	}
}

func TestGenerate_RandomOrder(t *testing.T) {
	a, b := newFake("a", nil), newFake("b", nil)
	c, err := NewController([]Rephraser{a, b}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	winners := map[string]int{}
	for range 200 {
		res, err := c.Generate(context.Background(), "x")
		if err != nil {
			t.Fatal(err)
		}
		winners[res.Provider]++
	}
	if winners["a"] == 0 || winners["b"] == 0 {
		t.Errorf("both providers should win sometimes: %v", winners)
	}
	if got := c.Providers(); got[0] != "a" || got[1] != "b" {
		t.Errorf("shared pool was reordered: %v", got)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	c, err := NewController([]Rephraser{newFake("a", nil), newFake("b", nil), newFake("c", nil)}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			if _, err := c.Generate(context.Background(), "x"); err != nil {
				t.Errorf("Generate() error: %v", err)
			}
		})
	}
	wg.Wait()
	if c.History().Len() != 20 {
		t.Errorf("history len = %d, want 20", c.History().Len())
	}
}

func TestNewController_DuplicateNames(t *testing.T) {
	_, err := NewController([]Rephraser{newFake("a", nil), newFake("a", nil)}, DefaultConfig())
	if !goerrors.HasCode(err, goerrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestNewController_NegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = -time.Second
	_, err := NewController(nil, cfg)
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("expected timeout validation error, got %v", err)
	}
	if !goerrors.HasCode(err, goerrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestInstrumentKeepsName(t *testing.T) {
	r := Instrument(newFake("a", nil), nil, nil, provider.ResilienceConfig{})
	if r.Name() != "a" {
		t.Errorf("Name() = %q", r.Name())
	}
}
