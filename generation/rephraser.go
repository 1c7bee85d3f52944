package generation

import (
	"context"
	"strings"

	"github.com/kbukum/slaybot/llm"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/observability"
	"github.com/kbukum/slaybot/provider"
)

// Rephraser turns one text into another. Name must be stable and unique
// within a pool.
type Rephraser = provider.RequestResponse[string, string]

// NewLLMRephraser adapts a chat completion provider into a Rephraser that
// sends prompt as the system message and the input as the user message.
func NewLLMRephraser(name string, backend provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse], prompt string) Rephraser {
	return provider.Adapt(backend, name,
		func(_ context.Context, text string) (llm.CompletionRequest, error) {
			return llm.CompletionRequest{
				SystemPrompt: prompt,
				Messages:     []llm.Message{{Role: llm.RoleUser, Content: text}},
			}, nil
		},
		func(resp llm.CompletionResponse) (string, error) {
			// Telegram trims sent text; history must hold what users see.
			text := strings.TrimSpace(resp.Content)
			if text == "" {
				return "", llm.ErrNoContent
			}
			return text, nil
		},
	)
}

// Instrument wraps r with tracing, metrics, logging and the given retry and
// circuit breaker policy. Retries run innermost so each attempt is logged
// only once as part of the call.
func Instrument(r Rephraser, log *logger.Logger, metrics *observability.Metrics, res provider.ResilienceConfig) Rephraser {
	return provider.Chain(
		provider.WithTracing[string, string]("generation.rephrase"),
		provider.WithMetrics[string, string](metrics),
		provider.WithLogging[string, string](log),
		provider.WithResilience[string, string](res),
	)(r)
}
