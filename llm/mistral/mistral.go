// Package mistral registers the "mistral" llm dialect.
package mistral

import (
	"github.com/kbukum/slaybot/llm"
	"github.com/kbukum/slaybot/llm/openai"
)

const (
	// Name is the registered dialect name.
	Name = "mistral"
	// DefaultBaseURL is the Mistral API root.
	DefaultBaseURL = "https://api.mistral.ai"
	// DefaultModel is used when the config names none.
	DefaultModel = "mistral-small-latest"
)

func init() {
	llm.RegisterDialect(Name, &Dialect{Dialect: openai.New(Name, openai.DefaultChatPath)})
}

// Dialect is the OpenAI format with Mistral defaults.
type Dialect struct {
	*openai.Dialect
}

// Prepare fills in the Mistral base URL and model.
func (d *Dialect) Prepare(cfg *llm.Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return nil
}
