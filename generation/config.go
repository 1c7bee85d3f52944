package generation

import (
	"time"

	"github.com/kbukum/slaybot/resilience"
	"github.com/kbukum/slaybot/validation"
)

const (
	defaultHistorySize   = 20
	defaultTimeout       = 30 * time.Second
	defaultMaxConcurrent = 4
)

// DefaultPrompt asks the model to rewrite a message in the bot's voice.
const DefaultPrompt = "Перепиши сообщение пользователя в дерзком неформальном стиле, " +
	"сохранив смысл. Ответь только новым текстом без пояснений."

// Config configures the generation controller.
type Config struct {
	// HistorySize is how many successful generations are remembered.
	HistorySize int `yaml:"history_size" mapstructure:"history_size" validate:"gte=0"`
	// Timeout bounds one provider call including its retries. 0 disables it.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// Prompt is the system prompt sent with every rephrase request.
	Prompt string `yaml:"prompt" mapstructure:"prompt"`
	// Bulkhead caps concurrent Generate calls.
	Bulkhead resilience.BulkheadConfig `yaml:"bulkhead" mapstructure:"bulkhead"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		HistorySize: defaultHistorySize,
		Timeout:     defaultTimeout,
		Prompt:      DefaultPrompt,
		Bulkhead:    resilience.BulkheadConfig{MaxConcurrent: defaultMaxConcurrent},
	}
}

// ApplyDefaults fills in zero-value fields that have no "disabled" meaning.
func (c *Config) ApplyDefaults() {
	if c.HistorySize <= 0 {
		c.HistorySize = defaultHistorySize
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.Bulkhead.MaxConcurrent <= 0 {
		c.Bulkhead.MaxConcurrent = defaultMaxConcurrent
	}
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
