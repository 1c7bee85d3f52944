package httpclient

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

func newTransport(cfg Config) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	if cfg.ProxyURL == "" {
		return transport, nil
	}
	u, err := url.Parse(cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("httpclient: parse proxy_url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	default:
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("httpclient: build proxy dialer: %w", err)
		}
		cd, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("httpclient: proxy dialer for %q does not support contexts", u.Scheme)
		}
		transport.Proxy = nil
		transport.DialContext = cd.DialContext
	}
	return transport, nil
}
