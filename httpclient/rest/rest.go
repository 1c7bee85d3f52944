// Package rest provides typed JSON helpers on top of httpclient.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbukum/slaybot/httpclient"
)

// Response is a decoded JSON response.
type Response[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

// RequestOption customizes a request before it is sent.
type RequestOption func(*httpclient.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithQuery sets a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// WithAuth overrides the client-level auth.
func WithAuth(auth *httpclient.AuthConfig) RequestOption {
	return func(r *httpclient.Request) { r.Auth = auth }
}

// Get performs a GET and decodes the JSON body into T.
func Get[T any](ctx context.Context, c *httpclient.Client, path string, opts ...RequestOption) (*Response[T], error) {
	return Do[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST with body and decodes the JSON response into T.
func Post[T any](ctx context.Context, c *httpclient.Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return Do[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Do performs a request and decodes the JSON response into T.
func Do[T any](ctx context.Context, c *httpclient.Client, method, path string, body any, opts ...RequestOption) (*Response[T], error) {
	req := httpclient.Request{
		Method:  method,
		Path:    path,
		Body:    body,
		Headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &Response[T]{StatusCode: resp.StatusCode, Headers: resp.Headers}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
			return nil, fmt.Errorf("rest: decode response: %w", err)
		}
	}
	return out, nil
}
