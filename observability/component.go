package observability

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/slaybot/component"
)

// Component installs the OTLP providers on Start and flushes them on Stop.
// It should be registered first so it stops last.
type Component struct {
	cfg Config
	res Resource

	mu        sync.Mutex
	telemetry *Telemetry
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a telemetry component.
func NewComponent(cfg Config, res Resource) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, res: res}
}

// Name returns the component name.
func (c *Component) Name() string { return "telemetry" }

// Start initialises the exporters.
func (c *Component) Start(ctx context.Context) error {
	t, err := Init(ctx, c.cfg, c.res)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	c.mu.Lock()
	c.telemetry = t
	c.mu.Unlock()
	return nil
}

// Stop flushes pending spans and metrics.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	t := c.telemetry
	c.telemetry = nil
	c.mu.Unlock()
	if t == nil {
		return nil
	}
	return t.Shutdown(ctx)
}

// Health reports whether exporting is active.
func (c *Component) Health(context.Context) component.Health {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.telemetry == nil:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	case !c.telemetry.Enabled():
		return component.Health{Name: c.Name(), Status: component.StatusHealthy, Message: "export disabled"}
	default:
		return component.Health{Name: c.Name(), Status: component.StatusHealthy}
	}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp %s (sample %.2f)", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "observability", Details: details}
}
