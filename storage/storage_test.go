package storage_test

import (
	"context"
	"testing"

	"github.com/kbukum/slaybot/component"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/storage"
	_ "github.com/kbukum/slaybot/storage/local"
)

func TestConfig_Validate(t *testing.T) {
	cfg := storage.Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	cfg.Provider = "s3"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestComponentLifecycle(t *testing.T) {
	ctx := context.Background()
	c := storage.NewComponent(storage.Config{BasePath: t.TempDir()}, logger.Nop())

	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("health before start = %s", h.Status)
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !c.IsAvailable(ctx) || c.Storage() == nil {
		t.Fatal("storage not available after start")
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("health after start = %s (%s)", h.Status, h.Message)
	}

	bc := storage.NewByteClient(c.Storage())
	if err := bc.Upload(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, err := bc.Download(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Download() = %q, %v", got, err)
	}

	_ = c.Stop(ctx)
	if c.IsAvailable(ctx) {
		t.Error("storage still available after stop")
	}
}
