// Package grok registers the "grok" llm dialect for the xAI API.
package grok

import (
	"github.com/kbukum/slaybot/llm"
	"github.com/kbukum/slaybot/llm/openai"
)

const (
	// Name is the registered dialect name.
	Name = "grok"
	// DefaultBaseURL is the xAI API root.
	DefaultBaseURL = "https://api.x.ai"
	// DefaultModel is used when the config names none.
	DefaultModel = "grok-4-1-fast-non-reasoning"
)

func init() {
	llm.RegisterDialect(Name, &Dialect{Dialect: openai.New(Name, openai.DefaultChatPath)})
}

// Dialect is the OpenAI format with xAI defaults. Requests go out with
// "stream": false, which xAI expects explicitly.
type Dialect struct {
	*openai.Dialect
}

// Prepare fills in the xAI base URL and model.
func (d *Dialect) Prepare(cfg *llm.Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return nil
}
