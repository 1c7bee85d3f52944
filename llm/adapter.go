package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kbukum/slaybot/httpclient"
	"github.com/kbukum/slaybot/httpclient/rest"
	"github.com/kbukum/slaybot/provider"
	"github.com/kbukum/slaybot/resilience"
)

// Sentinel errors.
var (
	ErrNoDialect = errors.New("llm: dialect is required")
	// ErrNoContent is returned when the provider answered without any text.
	ErrNoContent = errors.New("llm: response has no content")
)

// Adapter is a chat completion client for one provider.
//
// Adapter implements provider.RequestResponse[CompletionRequest, CompletionResponse].
type Adapter struct {
	client     *httpclient.Client
	dialect    Dialect
	auth       Authenticator
	name       string
	model      string
	temp       float64
	maxTokens  int
	resilience provider.ResilienceConfig
}

var _ provider.RequestResponse[CompletionRequest, CompletionResponse] = (*Adapter)(nil)

// New creates an adapter from config using the global dialect registry.
func New(cfg Config) (*Adapter, error) {
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(dialect, cfg)
}

// NewWithDialect creates an adapter with an explicit dialect instance.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	if cfg.Dialect == "" {
		cfg.Dialect = dialect.Name()
	}
	if p, ok := dialect.(Preparer); ok {
		if err := p.Prepare(&cfg); err != nil {
			return nil, fmt.Errorf("llm: prepare %s: %w", dialect.Name(), err)
		}
	}
	cfg.applyDefaults()

	client, err := httpclient.New(httpclient.Config{
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
		ProxyURL: cfg.ProxyURL,
		TLS:      cfg.TLS,
		Headers:  cfg.Headers,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}

	auth := cfg.Authenticator
	if auth == nil && cfg.APIKey != "" {
		auth = StaticToken(cfg.APIKey)
	}

	res := cfg.Resilience
	if res.Retry != nil && res.Retry.RetryIf == nil {
		retry := *res.Retry
		retry.RetryIf = IsRetryable
		res.Retry = &retry
	}

	return &Adapter{
		client:     client,
		dialect:    dialect,
		auth:       auth,
		name:       cfg.Name,
		model:      cfg.Model,
		temp:       cfg.Temperature,
		maxTokens:  cfg.MaxTokens,
		resilience: res,
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.name }

// IsAvailable reports true: none of the supported providers exposes a
// health endpoint, so availability is decided by the circuit breaker.
func (a *Adapter) IsAvailable(context.Context) bool { return true }

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// Resilience returns the retry and circuit breaker policy configured for
// this adapter, with retries limited to transient failures.
func (a *Adapter) Resilience() provider.ResilienceConfig { return a.resilience }

// Close releases idle connections.
func (a *Adapter) Close() { a.client.Close() }

// Execute sends a completion request and returns the response. A rejected
// credential is renewed and the call retried once. An empty completion is
// ErrNoContent.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	a.applyDefaults(&req)

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}

	raw, err := a.post(ctx, body)
	if err != nil && a.auth != nil && httpclient.IsAuth(err) {
		a.auth.Invalidate()
		raw, err = a.post(ctx, body)
	}
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: %s: %w", a.name, err)
	}

	result, err := a.dialect.ParseResponse(raw)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: parse response: %w", err)
	}
	if strings.TrimSpace(result.Content) == "" {
		return CompletionResponse{}, ErrNoContent
	}
	return *result, nil
}

func (a *Adapter) post(ctx context.Context, body any) (json.RawMessage, error) {
	var opts []rest.RequestOption
	if a.auth != nil {
		header, err := a.auth.Authorization(ctx)
		if err != nil {
			return nil, fmt.Errorf("authorize: %w", err)
		}
		opts = append(opts, rest.WithHeader("Authorization", header))
	}
	resp, err := rest.Post[json.RawMessage](ctx, a.client, a.dialect.ChatPath(), body, opts...)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (a *Adapter) applyDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == 0 {
		req.Temperature = a.temp
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.maxTokens
	}
}

// IsRetryable reports whether a completion error is transient: transport
// failures, timeouts, 429 and 5xx. Cancellation is never retried.
func IsRetryable(err error) bool {
	return resilience.DefaultRetryIf(err) && httpclient.IsRetryable(err)
}
