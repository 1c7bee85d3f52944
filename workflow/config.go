package workflow

import (
	"fmt"
	"time"
)

const (
	// DefaultTriggerPrefix starts a message the bot should rephrase.
	DefaultTriggerPrefix = "!slay "
	// DefaultTimezone is where Friday starts.
	DefaultTimezone = "Europe/Moscow"
	// MenuColumns is the width of the /slay button grid.
	MenuColumns = 4
)

// Config configures the engine.
type Config struct {
	// TriggerPrefix marks free text for rephrasing. Empty disables it.
	TriggerPrefix string `yaml:"trigger_prefix" mapstructure:"trigger_prefix"`
	// Timezone is an IANA zone name used by /friday.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{TriggerPrefix: DefaultTriggerPrefix, Timezone: DefaultTimezone}
}

// ApplyDefaults fills the timezone when unset.
func (c *Config) ApplyDefaults() {
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
}

// Validate checks that the timezone is known.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("workflow: timezone %q: %w", c.Timezone, err)
	}
	return nil
}
