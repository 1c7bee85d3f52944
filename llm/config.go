package llm

import (
	"time"

	"github.com/kbukum/slaybot/provider"
	"github.com/kbukum/slaybot/security"
)

const defaultTimeout = 60 * time.Second

// Config holds configuration for one LLM adapter.
type Config struct {
	// Name identifies this adapter. Defaults to the dialect name.
	Name string `yaml:"name" mapstructure:"name"`
	// Dialect selects the provider mapping registered via RegisterDialect.
	Dialect string `yaml:"dialect" mapstructure:"dialect"`
	// Enabled switches the provider off without removing its settings.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Model       string  `yaml:"model" mapstructure:"model"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`

	// APIKey is sent as a bearer token.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// ClientID and ClientSecret are used by dialects with an OAuth exchange.
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	// AuthURL and Scope configure the OAuth token endpoint, if the dialect
	// needs one.
	AuthURL string `yaml:"auth_url" mapstructure:"auth_url"`
	Scope   string `yaml:"scope" mapstructure:"scope"`

	Timeout  time.Duration       `yaml:"timeout" mapstructure:"timeout"`
	ProxyURL string              `yaml:"proxy_url" mapstructure:"proxy_url"`
	TLS      *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
	Headers  map[string]string   `yaml:"headers" mapstructure:"headers"`

	// Resilience configures retry and circuit breaking around Execute.
	Resilience provider.ResilienceConfig `yaml:"resilience" mapstructure:"resilience"`

	// Authenticator overrides APIKey. Set by dialects in Prepare.
	Authenticator Authenticator `yaml:"-" mapstructure:"-"`
}

// HasCredentials reports whether any credential is configured.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" || (c.ClientID != "" && c.ClientSecret != "") || c.Authenticator != nil
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" {
		c.Name = c.Dialect
	}
}
