// Package gigachat registers the "gigachat" llm dialect for Sber GigaChat.
//
// GigaChat uses short-lived access tokens obtained from an OAuth endpoint
// with the client id and secret; [TokenSource] caches and renews them.
package gigachat

import (
	"errors"

	"github.com/kbukum/slaybot/httpclient"
	"github.com/kbukum/slaybot/llm"
	"github.com/kbukum/slaybot/llm/openai"
)

const (
	// Name is the registered dialect name.
	Name = "gigachat"
	// DefaultBaseURL is the GigaChat API root.
	DefaultBaseURL = "https://gigachat.devices.sberbank.ru/api"
	// DefaultAuthURL is the OAuth token endpoint.
	DefaultAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	// DefaultScope is the personal API scope.
	DefaultScope = "GIGACHAT_API_PERS"
	// DefaultModel is used when the config names none.
	DefaultModel = "GigaChat-2"
)

// ErrNoCredentials is returned when client id or secret is missing.
var ErrNoCredentials = errors.New("gigachat: client_id and client_secret are required")

func init() {
	llm.RegisterDialect(Name, &Dialect{Dialect: openai.New(Name, openai.DefaultChatPath)})
}

// Dialect is the OpenAI format with GigaChat defaults and OAuth.
type Dialect struct {
	*openai.Dialect
}

// Prepare fills in GigaChat defaults and installs a TokenSource as the
// adapter's authenticator. The token endpoint shares the TLS and proxy
// settings of the chat endpoint.
func (d *Dialect) Prepare(cfg *llm.Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}
	if cfg.Authenticator != nil {
		return nil
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return ErrNoCredentials
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:  cfg.Timeout,
		ProxyURL: cfg.ProxyURL,
		TLS:      cfg.TLS,
	})
	if err != nil {
		return err
	}
	cfg.Authenticator = NewTokenSource(client, cfg.AuthURL, cfg.ClientID, cfg.ClientSecret, cfg.Scope)
	return nil
}
