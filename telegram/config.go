package telegram

import (
	"fmt"
	"time"

	"github.com/kbukum/slaybot/resilience"
)

const (
	defaultPollTimeout    = 50 * time.Second
	defaultHandlerTimeout = 2 * time.Minute
	defaultWorkers        = 8
	defaultSendRate       = 25
)

// Config configures the Bot API connection.
type Config struct {
	Token string `yaml:"token" mapstructure:"token" validate:"required"`
	// ServerURL overrides https://api.telegram.org, e.g. for a local Bot API server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// ProxyURL routes Bot API traffic through an http(s) or socks5 proxy.
	ProxyURL string `yaml:"proxy_url" mapstructure:"proxy_url"`
	// PollTimeout is the long-polling timeout of getUpdates.
	PollTimeout time.Duration `yaml:"poll_timeout" mapstructure:"poll_timeout"`
	// HandlerTimeout bounds the processing of a single update.
	HandlerTimeout time.Duration `yaml:"handler_timeout" mapstructure:"handler_timeout"`
	// Workers is the number of updates processed concurrently.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=0"`
	// SendRate limits outgoing Bot API calls.
	SendRate resilience.RateLimiterConfig `yaml:"send_rate" mapstructure:"send_rate"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.PollTimeout <= 0 {
		c.PollTimeout = defaultPollTimeout
	}
	if c.HandlerTimeout <= 0 {
		c.HandlerTimeout = defaultHandlerTimeout
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.SendRate.Rate <= 0 {
		c.SendRate.Rate = defaultSendRate
	}
	if c.SendRate.Burst <= 0 {
		c.SendRate.Burst = defaultSendRate
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("telegram: token is required")
	}
	return nil
}
