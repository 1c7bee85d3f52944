package gigachat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/slaybot/httpclient"
	"github.com/kbukum/slaybot/llm"
)

func newTokenServer(t *testing.T, calls *atomic.Int32, expiresAt time.Time) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "id" || pass != "secret" {
			t.Errorf("basic auth = %q %q", user, pass)
		}
		if _, err := uuid.Parse(r.Header.Get("RqUID")); err != nil {
			t.Errorf("RqUID is not a uuid: %q", r.Header.Get("RqUID"))
		}
		_ = r.ParseForm()
		if r.PostForm.Get("scope") != DefaultScope {
			t.Errorf("scope = %q", r.PostForm.Get("scope"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok" + string(rune('0'+n)),
			"expires_at":   expiresAt.UnixMilli(),
		})
	}))
}

func TestTokenSource_CachesUntilNearExpiry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var calls atomic.Int32
	srv := newTokenServer(t, &calls, now.Add(time.Minute))
	defer srv.Close()

	client, _ := httpclient.New(httpclient.Config{})
	ts := NewTokenSource(client, srv.URL, "id", "secret", DefaultScope)
	ts.now = func() time.Time { return now }

	for range 3 {
		got, err := ts.Authorization(context.Background())
		if err != nil {
			t.Fatalf("Authorization() error: %v", err)
		}
		if got != "Bearer tok1" {
			t.Errorf("Authorization() = %q", got)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("token fetched %d times, want 1", calls.Load())
	}

	// Within three seconds of expiry the token is renewed.
	ts.now = func() time.Time { return now.Add(time.Minute - 2*time.Second) }
	got, _ := ts.Authorization(context.Background())
	if got != "Bearer tok2" || calls.Load() != 2 {
		t.Errorf("got %q after %d calls", got, calls.Load())
	}
}

func TestTokenSource_Invalidate(t *testing.T) {
	var calls atomic.Int32
	srv := newTokenServer(t, &calls, time.Now().Add(time.Hour))
	defer srv.Close()

	client, _ := httpclient.New(httpclient.Config{})
	ts := NewTokenSource(client, srv.URL, "id", "secret", DefaultScope)

	_, _ = ts.Authorization(context.Background())
	ts.Invalidate()
	_, _ = ts.Authorization(context.Background())
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestTokenSource_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, _ := httpclient.New(httpclient.Config{})
	ts := NewTokenSource(client, srv.URL, "id", "bad", DefaultScope)
	if _, err := ts.Authorization(context.Background()); !httpclient.IsAuth(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestAdapterUsesTokenSource(t *testing.T) {
	var tokenCalls atomic.Int32
	tokenSrv := newTokenServer(t, &tokenCalls, time.Now().Add(time.Hour))
	defer tokenSrv.Close()

	chatSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok1" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != DefaultModel {
			t.Errorf("model = %v", body["model"])
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"привет"}}]}`))
	}))
	defer chatSrv.Close()

	a, err := llm.New(llm.Config{
		Dialect:      Name,
		BaseURL:      chatSrv.URL,
		AuthURL:      tokenSrv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	got, err := llm.Complete(context.Background(), a, "sys", "hi")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got != "привет" {
		t.Errorf("Complete() = %q", got)
	}
}

func TestPrepare_RequiresCredentials(t *testing.T) {
	d := &Dialect{}
	if err := d.Prepare(&llm.Config{}); err != ErrNoCredentials {
		t.Errorf("expected ErrNoCredentials, got %v", err)
	}
}
