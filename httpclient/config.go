package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/slaybot/security"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds a whole request including reading the body. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// ProxyURL routes requests through an http, https, socks5 or socks5h proxy.
	ProxyURL string `yaml:"proxy_url" mapstructure:"proxy_url"`
	// TLS configures the transport's TLS client settings.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
	// Headers are applied to every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// Auth is the default authentication. Requests can override it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.ProxyURL != "" {
		u, err := url.Parse(c.ProxyURL)
		if err != nil {
			return fmt.Errorf("httpclient: invalid proxy_url: %w", err)
		}
		switch u.Scheme {
		case "http", "https", "socks5", "socks5h":
		default:
			return fmt.Errorf("httpclient: unsupported proxy scheme %q", u.Scheme)
		}
	}
	return nil
}
