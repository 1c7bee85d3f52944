package llm

import "context"

// Authenticator supplies the Authorization header for provider calls and
// can be told that the current credential was rejected.
type Authenticator interface {
	// Authorization returns the header value, fetching a credential if needed.
	Authorization(ctx context.Context) (string, error)
	// Invalidate drops the cached credential so the next call fetches a new one.
	Invalidate()
}

// StaticToken is an Authenticator for a fixed bearer token.
type StaticToken string

// Authorization returns "Bearer <token>".
func (t StaticToken) Authorization(context.Context) (string, error) {
	return "Bearer " + string(t), nil
}

// Invalidate is a no-op: a static token cannot be renewed.
func (StaticToken) Invalidate() {}
