package sticker

import (
	"context"
	"testing"

	"github.com/kbukum/slaybot/component"
	"github.com/kbukum/slaybot/storage"
)

type staticSource struct{ s storage.Storage }

func (s staticSource) Storage() storage.Storage { return s.s }

func TestComponent_Start(t *testing.T) {
	mem := newMemStorage()
	mem.data[DefaultFile] = []byte(`[{"name":"a","media_reference":"1"}]`)

	c := NewComponent(Config{}, staticSource{mem}, nil, nil)
	if h := c.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("health before start = %s", h.Status)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if c.Catalog() == nil || !c.Catalog().Exists("a") {
		t.Fatal("catalog not loaded")
	}
	if h := c.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("health after start = %s", h.Status)
	}
}

func TestComponent_StartWithoutStorage(t *testing.T) {
	c := NewComponent(Config{}, staticSource{}, nil, nil)
	if err := c.Start(context.Background()); err == nil {
		t.Error("expected error when storage is not started")
	}
}

func TestComponent_MalformedFileFailsStartup(t *testing.T) {
	mem := newMemStorage()
	mem.data[DefaultFile] = []byte(`not json`)
	c := NewComponent(Config{}, staticSource{mem}, nil, nil)
	if err := c.Start(context.Background()); err == nil {
		t.Error("expected startup error for malformed file")
	}
}
