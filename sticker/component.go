package sticker

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/slaybot/component"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/observability"
	"github.com/kbukum/slaybot/storage"
)

// DefaultFile is the catalog file key inside the storage base path.
const DefaultFile = "stickers.json"

// Config configures the sticker catalog.
type Config struct {
	// File is the storage key of the JSON array file.
	File string `yaml:"file" mapstructure:"file"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.File == "" {
		c.File = DefaultFile
	}
}

// StorageSource yields the storage backend once it has started.
type StorageSource interface {
	Storage() storage.Storage
}

// Component loads the catalog at startup. It must be registered after the
// storage component it reads from.
type Component struct {
	cfg     Config
	source  StorageSource
	log     *logger.Logger
	metrics *observability.Metrics
	catalog *Catalog
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a catalog component.
func NewComponent(cfg Config, source StorageSource, log *logger.Logger, metrics *observability.Metrics) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, source: source, log: log, metrics: metrics}
}

// Name returns the component name.
func (c *Component) Name() string { return "sticker-catalog" }

// Catalog returns the loaded catalog, or nil before Start.
func (c *Component) Catalog() *Catalog { return c.catalog }

// Start loads the catalog. Malformed content fails startup.
func (c *Component) Start(ctx context.Context) error {
	s := c.source.Storage()
	if s == nil {
		return errors.New("sticker: storage is not started")
	}
	catalog := NewCatalog(s, c.cfg.File, WithLogger(c.log), WithMetrics(c.metrics))
	if err := catalog.Load(ctx); err != nil {
		return fmt.Errorf("load sticker catalog: %w", err)
	}
	c.catalog = catalog
	return nil
}

// Stop is a no-op: every mutation is already on disk.
func (c *Component) Stop(context.Context) error { return nil }

// Health reports healthy once the catalog is loaded.
func (c *Component) Health(context.Context) component.Health {
	if c.catalog == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not loaded"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	details := "file=" + c.cfg.File
	if c.catalog != nil {
		details += fmt.Sprintf(" stickers=%d", c.catalog.Len())
	}
	return component.Description{Name: "Sticker catalog", Type: "catalog", Details: details}
}
