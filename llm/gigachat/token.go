package gigachat

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/slaybot/httpclient"
	"github.com/kbukum/slaybot/httpclient/rest"
)

// refreshWindow renews a token this long before it expires.
const refreshWindow = 3 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	// ExpiresAt is a Unix timestamp in milliseconds.
	ExpiresAt int64 `json:"expires_at"`
}

// TokenSource fetches and caches GigaChat access tokens. It implements
// llm.Authenticator and is safe for concurrent use; concurrent callers
// share a single refresh.
type TokenSource struct {
	client       *httpclient.Client
	authURL      string
	clientID     string
	clientSecret string
	scope        string
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenSource creates a TokenSource that posts to authURL.
func NewTokenSource(client *httpclient.Client, authURL, clientID, clientSecret, scope string) *TokenSource {
	return &TokenSource{
		client:       client,
		authURL:      authURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		now:          time.Now,
	}
}

// Authorization returns "Bearer <token>", refreshing the token when it is
// missing or expires within three seconds.
func (s *TokenSource) Authorization(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || !s.now().Add(refreshWindow).Before(s.expiresAt) {
		if err := s.refresh(ctx); err != nil {
			return "", err
		}
	}
	return "Bearer " + s.token, nil
}

// Invalidate forgets the cached token.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func (s *TokenSource) refresh(ctx context.Context) error {
	resp, err := rest.Post[tokenResponse](ctx, s.client, s.authURL,
		url.Values{"scope": {s.scope}},
		rest.WithAuth(httpclient.BasicAuth(s.clientID, s.clientSecret)),
		rest.WithHeader("RqUID", uuid.NewString()),
	)
	if err != nil {
		return fmt.Errorf("gigachat: fetch token: %w", err)
	}
	if resp.Data.AccessToken == "" {
		return errors.New("gigachat: token response has no access_token")
	}
	s.token = resp.Data.AccessToken
	s.expiresAt = time.UnixMilli(resp.Data.ExpiresAt)
	return nil
}
