package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/slaybot/config"
)

func loadTestConfig(t *testing.T, yaml string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig()
	if err := config.LoadConfig(serviceName, cfg, config.WithConfigFile(path), config.WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestConfig_ShippedFileWithEnvSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("PROVIDERS_MISTRAL_API_KEY", "m-key")

	data, err := os.ReadFile("config.yml")
	if err != nil {
		t.Fatal(err)
	}
	cfg := loadTestConfig(t, string(data))

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if !cfg.Providers.Mistral.Enabled || cfg.Providers.Grok.Enabled || cfg.Providers.GigaChat.Enabled {
		t.Errorf("only mistral should be enabled: %+v", cfg.Providers)
	}
	if cfg.Dialogue.IdleTimeout != 30*time.Minute {
		t.Errorf("idle timeout = %v", cfg.Dialogue.IdleTimeout)
	}
	if cfg.Workflow.TriggerPrefix != "!slay " {
		t.Errorf("prefix = %q", cfg.Workflow.TriggerPrefix)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("server port = %d", cfg.Server.Port)
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	cfg := loadTestConfig(t, "name: slaybot\n")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Generation.Timeout != 30*time.Second || cfg.Generation.HistorySize != 20 {
		t.Errorf("generation = %+v", cfg.Generation)
	}
	if cfg.Storage.BasePath == "" || cfg.Sticker.File != "stickers.json" {
		t.Errorf("storage = %+v sticker = %+v", cfg.Storage, cfg.Sticker)
	}
	for _, p := range cfg.Providers.all() {
		if p.Resilience.Retry == nil || p.Resilience.Retry.MaxAttempts != 2 {
			t.Errorf("%s: retry = %+v", p.Dialect, p.Resilience.Retry)
		}
		if p.Resilience.CircuitBreaker == nil || p.Resilience.CircuitBreaker.Name != p.Dialect {
			t.Errorf("%s: breaker = %+v", p.Dialect, p.Resilience.CircuitBreaker)
		}
	}
}

func TestConfig_ZeroIdleTimeoutDisablesExpiry(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	cfg := loadTestConfig(t, "name: slaybot\ndialogue:\n  idle_timeout: 0s\n")
	if cfg.Dialogue.IdleTimeout != 0 {
		t.Errorf("idle timeout = %v, want 0", cfg.Dialogue.IdleTimeout)
	}
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		token   string
		wantErr string
	}{
		{"missing token", "name: slaybot\n", "", "token"},
		{"bad timezone", "name: slaybot\nworkflow:\n  timezone: Mars/Olympus\n", "t", "workflow"},
		{"bad environment", "name: slaybot\nenvironment: moon\n", "t", "environment"},
		{"bad storage", "name: slaybot\nstorage:\n  provider: s3\n", "t", "storage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_TOKEN", tt.token)
			cfg := loadTestConfig(t, tt.yaml)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
