package generation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/observability"
	"github.com/kbukum/slaybot/provider"
	"github.com/kbukum/slaybot/resilience"
)

// ErrUnavailable marks a provider that was skipped because it reported
// itself unavailable (for example, an open circuit).
var ErrUnavailable = errors.New("provider unavailable")

// Result is the output of a successful generation.
type Result struct {
	Text     string
	Provider string
}

// Controller rephrases text through a pool of providers.
type Controller struct {
	pool     []Rephraser
	history  *History
	bulkhead *resilience.Bulkhead
	metrics  *observability.Metrics
	log      *logger.Logger
	shuffle  func(n int, swap func(i, j int))
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log.WithComponent("generation")
		}
	}
}

// WithMetrics records generation outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// NewController creates a controller over pool. Provider names must be
// unique. Each provider call is bounded by cfg.Timeout.
func NewController(pool []Rephraser, cfg Config, opts ...Option) (*Controller, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(pool))
	bounded := make([]Rephraser, 0, len(pool))
	for _, r := range pool {
		if _, dup := seen[r.Name()]; dup {
			return nil, goerrors.InvalidInput("pool", fmt.Sprintf("duplicate provider name %q", r.Name()))
		}
		seen[r.Name()] = struct{}{}
		bounded = append(bounded, provider.WithTimeout[string, string](cfg.Timeout)(r))
	}

	c := &Controller{
		pool:     bounded,
		history:  NewHistory(cfg.HistorySize),
		bulkhead: resilience.NewBulkhead(cfg.Bulkhead),
		log:      logger.Nop(),
		shuffle:  rand.Shuffle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Providers returns the provider names in pool order.
func (c *Controller) Providers() []string {
	names := make([]string, len(c.pool))
	for i, r := range c.pool {
		names[i] = r.Name()
	}
	return names
}

// History returns the controller's generation history.
func (c *Controller) History() *History { return c.history }

// Generate tries the providers in a fresh random order and returns the
// first successful output. Failures are logged and the next provider is
// tried; a canceled ctx stops the loop. When every provider fails the error
// is ALL_PROVIDERS_FAILED and wraps each provider's error.
func (c *Controller) Generate(ctx context.Context, input string) (Result, error) {
	if len(c.pool) == 0 {
		c.metrics.RecordGeneration(ctx, "no_providers")
		return Result{}, goerrors.NoProviders()
	}

	ctx, span := observability.StartSpan(ctx, "generation.generate")
	defer span.End()

	res, err := resilience.ExecuteWithResult(ctx, c.bulkhead, func() (Result, error) {
		return c.generate(ctx, input)
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return Result{}, err
	}
	observability.SetSpanAttributes(ctx, attribute.String(observability.AttrProvider, res.Provider))
	return res, nil
}

func (c *Controller) generate(ctx context.Context, input string) (Result, error) {
	order := slices.Clone(c.pool)
	c.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	log := c.log.WithContext(ctx)
	errs := make([]error, 0, len(order))
	for _, r := range order {
		if err := ctx.Err(); err != nil {
			c.metrics.RecordGeneration(ctx, "canceled")
			return Result{}, err
		}
		if !r.IsAvailable(ctx) {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), ErrUnavailable))
			log.Debug("provider unavailable, skipping", logger.Fields(logger.FieldProvider, r.Name()))
			continue
		}

		out, err := r.Execute(ctx, input)
		if err == nil {
			c.history.Add(Entry{Output: out, Provider: r.Name()})
			c.metrics.RecordGeneration(ctx, "ok")
			return Result{Text: out, Provider: r.Name()}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.metrics.RecordGeneration(ctx, "canceled")
			return Result{}, ctxErr
		}

		fields := logger.ErrorFields("rephrase", err)
		fields[logger.FieldProvider] = r.Name()
		log.Warn("provider failed, trying next", fields)
		errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
	}

	c.metrics.RecordGeneration(ctx, "failed")
	return Result{}, goerrors.AllProvidersFailed(len(errs), errors.Join(errs...))
}

// MessageInfo returns the provider that generated text, searching the
// history from newest to oldest.
func (c *Controller) MessageInfo(text string) (string, bool) {
	return c.history.Find(text)
}
