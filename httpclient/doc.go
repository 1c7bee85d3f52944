// Package httpclient is a small HTTP client for calling JSON APIs.
//
// It adds base URL resolution, default headers, per-request auth, custom
// root CAs, HTTP and SOCKS5 proxies, and classifies non-2xx responses into
// *Error values so callers can branch on IsAuth, IsRateLimit or IsRetryable.
//
// Retry and circuit breaking are not done here; wrap the caller with
// provider.WithResilience instead.
package httpclient
