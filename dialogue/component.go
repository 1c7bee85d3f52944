package dialogue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/slaybot/component"
	"github.com/kbukum/slaybot/logger"
)

// Config configures the conversation store.
type Config struct {
	// IdleTimeout expires conversations not touched for this long. 0 disables it.
	IdleTimeout time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{IdleTimeout: DefaultIdleTimeout}
}

// Sweeper is a component that periodically drops expired conversations so
// abandoned flows do not accumulate.
type Sweeper struct {
	store    *Store
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ component.Component = (*Sweeper)(nil)

// NewSweeper creates a sweeper that runs every interval. A non-positive
// interval makes Start a no-op.
func NewSweeper(store *Store, interval time.Duration, log *logger.Logger) *Sweeper {
	if log == nil {
		log = logger.Nop()
	}
	return &Sweeper{store: store, interval: interval, log: log.WithComponent("dialogue")}
}

// Name returns the component name.
func (s *Sweeper) Name() string { return "dialogue-sweeper" }

// Start launches the sweep loop.
func (s *Sweeper) Start(context.Context) error {
	if s.interval <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	return nil
}

func (s *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(); n > 0 {
				s.log.Debug("expired conversations dropped", logger.Fields("count", n))
			}
		}
	}
}

// Stop ends the sweep loop.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health reports the number of live conversations.
func (s *Sweeper) Health(context.Context) component.Health {
	return component.Health{
		Name:    s.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d active conversations", s.store.Len()),
	}
}
