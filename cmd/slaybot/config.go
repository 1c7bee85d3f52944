package main

import (
	"fmt"
	"time"

	"github.com/kbukum/slaybot/config"
	"github.com/kbukum/slaybot/dialogue"
	"github.com/kbukum/slaybot/generation"
	"github.com/kbukum/slaybot/llm"
	"github.com/kbukum/slaybot/llm/gigachat"
	"github.com/kbukum/slaybot/llm/grok"
	"github.com/kbukum/slaybot/llm/mistral"
	"github.com/kbukum/slaybot/observability"
	"github.com/kbukum/slaybot/provider"
	"github.com/kbukum/slaybot/resilience"
	"github.com/kbukum/slaybot/server"
	"github.com/kbukum/slaybot/sticker"
	"github.com/kbukum/slaybot/storage"
	"github.com/kbukum/slaybot/telegram"
	"github.com/kbukum/slaybot/validation"
	"github.com/kbukum/slaybot/workflow"
)

const serviceName = "slaybot"

// ProvidersConfig holds one section per LLM backend.
type ProvidersConfig struct {
	Mistral  llm.Config `yaml:"mistral" mapstructure:"mistral"`
	Grok     llm.Config `yaml:"grok" mapstructure:"grok"`
	GigaChat llm.Config `yaml:"gigachat" mapstructure:"gigachat"`
}

// all returns the provider sections in pool order.
func (p *ProvidersConfig) all() []*llm.Config {
	return []*llm.Config{&p.Mistral, &p.Grok, &p.GigaChat}
}

// Config is the bot configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Telegram      telegram.Config      `yaml:"telegram" mapstructure:"telegram"`
	Providers     ProvidersConfig      `yaml:"providers" mapstructure:"providers"`
	Generation    generation.Config    `yaml:"generation" mapstructure:"generation"`
	Dialogue      dialogue.Config      `yaml:"dialogue" mapstructure:"dialogue"`
	Workflow      workflow.Config      `yaml:"workflow" mapstructure:"workflow"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Sticker       sticker.Config       `yaml:"sticker" mapstructure:"sticker"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
}

// defaultConfig pre-fills the values whose zero value means "disabled", so
// that only an explicit 0 in the file turns them off.
func defaultConfig() *Config {
	return &Config{
		ServiceConfig: config.ServiceConfig{Name: serviceName},
		Providers: ProvidersConfig{
			Mistral:  llm.Config{Dialect: mistral.Name},
			Grok:     llm.Config{Dialect: grok.Name},
			GigaChat: llm.Config{Dialect: gigachat.Name},
		},
		Generation: generation.DefaultConfig(),
		Dialogue:   dialogue.DefaultConfig(),
		Workflow:   workflow.DefaultConfig(),
		Server:     server.Config{Enabled: true},
	}
}

// ApplyDefaults fills unset fields of every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Telegram.ApplyDefaults()
	c.Generation.ApplyDefaults()
	c.Workflow.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Sticker.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Server.ApplyDefaults()

	for _, p := range c.Providers.all() {
		// A provider is switched on by configuring its credentials.
		if p.HasCredentials() {
			p.Enabled = true
		}
		if p.Resilience.IsEmpty() {
			p.Resilience = defaultResilience(p.Dialect)
		}
	}
}

// defaultResilience makes two attempts per provider and opens the breaker
// after repeated failed generations.
func defaultResilience(name string) provider.ResilienceConfig {
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = 2
	retry.InitialBackoff = 500 * time.Millisecond
	cb := resilience.DefaultCircuitBreakerConfig(name)
	return provider.ResilienceConfig{Retry: &retry, CircuitBreaker: &cb}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	checks := []struct {
		name string
		fn   func() error
	}{
		{"telegram", c.Telegram.Validate},
		{"generation", c.Generation.Validate},
		{"workflow", c.Workflow.Validate},
		{"storage", c.Storage.Validate},
		{"server", c.Server.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}
	return nil
}
