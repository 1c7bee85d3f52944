package sticker

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/observability"
	"github.com/kbukum/slaybot/storage"
)

const resource = "sticker"

// Catalog is the sticker name registry.
type Catalog struct {
	store   storage.ByteClient
	path    string
	log     *logger.Logger
	metrics *observability.Metrics

	// writeMu serialises mutations across check, write and commit.
	writeMu sync.Mutex

	mu    sync.RWMutex
	cache map[string]string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the catalog's logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Catalog) {
		if log != nil {
			c.log = log.WithComponent("sticker")
		}
	}
}

// WithMetrics records catalog writes.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Catalog) { c.metrics = m }
}

// NewCatalog creates an empty catalog persisted to path in s. Call Load
// before serving.
func NewCatalog(s storage.Storage, path string, opts ...Option) *Catalog {
	c := &Catalog{
		store: storage.NewByteClient(s),
		path:  path,
		log:   logger.Nop(),
		cache: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the backing file into the cache. A missing or empty file is
// an empty catalog; malformed content is an error.
func (c *Catalog) Load(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	data, err := c.store.Download(ctx, c.path)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return goerrors.StorageError("load", err)
	}

	m, err := decode(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cache = m
	c.mu.Unlock()

	c.log.Info("sticker catalog loaded", logger.Fields("path", c.path, "count", len(m)))
	return nil
}

// Get returns the media reference for name.
func (c *Catalog) Get(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ref, ok := c.cache[name]
	return ref, ok
}

// Exists reports whether name is taken.
func (c *Catalog) Exists(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Len returns the number of stickers.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// List returns all names in ascending order.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedNames(c.cache)
}

// Entries returns all entries sorted by name.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return toEntries(c.cache)
}

// Add registers name for ref. It fails with ALREADY_EXISTS when the name
// is taken.
func (c *Catalog) Add(ctx context.Context, name, ref string) error {
	if strings.TrimSpace(name) == "" {
		return goerrors.InvalidInput("name", "must not be empty")
	}
	if ref == "" {
		return goerrors.InvalidInput("media_reference", "must not be empty")
	}
	return c.mutate(ctx, "add", func(next map[string]string) error {
		if _, ok := next[name]; ok {
			return goerrors.AlreadyExists(resource, name)
		}
		next[name] = ref
		return nil
	})
}

// Rename moves the reference from oldName to newName. It fails with
// NOT_FOUND when oldName is absent and ALREADY_EXISTS when newName is taken,
// including when both names are equal.
func (c *Catalog) Rename(ctx context.Context, oldName, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return goerrors.InvalidInput("name", "must not be empty")
	}
	return c.mutate(ctx, "rename", func(next map[string]string) error {
		ref, ok := next[oldName]
		if !ok {
			return goerrors.NotFound(resource, oldName)
		}
		if _, taken := next[newName]; taken {
			return goerrors.AlreadyExists(resource, newName)
		}
		delete(next, oldName)
		next[newName] = ref
		return nil
	})
}

// Remove deletes name. It fails with NOT_FOUND when name is absent.
func (c *Catalog) Remove(ctx context.Context, name string) error {
	return c.mutate(ctx, "remove", func(next map[string]string) error {
		if _, ok := next[name]; !ok {
			return goerrors.NotFound(resource, name)
		}
		delete(next, name)
		return nil
	})
}

// mutate applies fn to a copy of the cache, writes the copy and swaps it
// in. Readers keep seeing the old map until the write has succeeded.
func (c *Catalog) mutate(ctx context.Context, op string, fn func(next map[string]string) error) error {
	ctx, span := observability.StartSpan(ctx, "sticker."+op,
		attribute.String(observability.AttrOperation, op))
	defer span.End()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.RLock()
	next := maps.Clone(c.cache)
	c.mu.RUnlock()

	if err := fn(next); err != nil {
		c.metrics.RecordCatalogWrite(ctx, op, "rejected")
		return err
	}

	data, err := encode(next)
	if err == nil {
		err = c.store.Upload(ctx, c.path, data)
	}
	if err != nil {
		c.metrics.RecordCatalogWrite(ctx, op, "error")
		observability.SetSpanError(ctx, err)
		c.log.WithContext(ctx).Error("sticker catalog write failed", logger.ErrorFields(op, err))
		return goerrors.StorageError(op, err)
	}

	c.mu.Lock()
	c.cache = next
	c.mu.Unlock()

	c.metrics.RecordCatalogWrite(ctx, op, "ok")
	return nil
}
