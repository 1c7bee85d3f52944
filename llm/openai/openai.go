// Package openai implements the OpenAI-compatible chat completion format
// shared by Mistral, Grok and GigaChat.
package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/slaybot/llm"
)

// DefaultChatPath is the chat completion path relative to the API root.
const DefaultChatPath = "/v1/chat/completions"

// Dialect is an OpenAI-style llm.Dialect.
type Dialect struct {
	name     string
	chatPath string
}

// New creates a dialect with the given name and chat path.
func New(name, chatPath string) *Dialect {
	if chatPath == "" {
		chatPath = DefaultChatPath
	}
	return &Dialect{name: name, chatPath: chatPath}
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return d.name }

// ChatPath returns the chat completion endpoint.
func (d *Dialect) ChatPath() string { return d.chatPath }

// Request is the chat completion request body.
type Request struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

// Response is the chat completion response body.
type Response struct {
	Model   string    `json:"model"`
	Choices []Choice  `json:"choices"`
	Usage   llm.Usage `json:"usage"`
}

// Choice is one completion alternative.
type Choice struct {
	Index        int         `json:"index"`
	Message      llm.Message `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// BuildRequest maps the request to the OpenAI body.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	if len(req.Messages) == 0 {
		return nil, errors.New("openai: at least one message is required")
	}
	return Request{
		Model:       req.Model,
		Messages:    req.AllMessages(),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}, nil
}

// ParseResponse extracts choices[0].message.content. A response without
// choices is llm.ErrNoContent.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, llm.ErrNoContent
	}
	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage:   resp.Usage,
	}, nil
}
