package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/slaybot/component"
	"github.com/kbukum/slaybot/logger"
)

func newTestServer(health ...component.Health) *Server {
	s := New(Config{Host: "127.0.0.1"}, logger.Nop())
	s.RegisterProbes("slaybot", func(context.Context) []component.Health { return health })
	s.GinEngine().GET("/panic", func(*gin.Context) { panic("boom") })
	return s
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		health     []component.Health
		wantCode   int
		wantStatus string
	}{
		{"all healthy", []component.Health{{Name: "a", Status: component.StatusHealthy}}, 200, "healthy"},
		{"degraded", []component.Health{{Name: "a", Status: component.StatusDegraded}}, 200, "degraded"},
		{"unhealthy", []component.Health{
			{Name: "a", Status: component.StatusDegraded},
			{Name: "b", Status: component.StatusUnhealthy},
		}, 503, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, newTestServer(tt.health...), "/health")
			if rec.Code != tt.wantCode || body["status"] != tt.wantStatus {
				t.Errorf("got %d %v, want %d %s", rec.Code, body["status"], tt.wantCode, tt.wantStatus)
			}
		})
	}
}

func TestReady(t *testing.T) {
	rec, body := get(t, newTestServer(component.Health{Name: "telegram", Status: component.StatusUnhealthy}), "/ready")
	if rec.Code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Errorf("got %d %v", rec.Code, body)
	}
	rec, _ = get(t, newTestServer(), "/ready")
	if rec.Code != http.StatusOK {
		t.Errorf("empty registry: %d", rec.Code)
	}
}

func TestVersionAndRequestID(t *testing.T) {
	rec, body := get(t, newTestServer(), "/version")
	if rec.Code != http.StatusOK || body["version"] == nil {
		t.Errorf("got %d %v", rec.Code, body)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing request id header")
	}
}

func TestRecovery(t *testing.T) {
	rec, _ := get(t, newTestServer(), "/panic")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code = %d", rec.Code)
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	s := New(Config{Host: "127.0.0.1", Port: 0}, logger.Nop())
	s.httpServer.Addr = "127.0.0.1:0"
	s.RegisterProbes("slaybot", nil)
	c := NewComponent(s)
	ctx := context.Background()

	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("health before start = %v", h.Status)
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("health after start = %v", h.Status)
	}

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
}

func TestComponent_Routes(t *testing.T) {
	c := NewComponent(newTestServer())
	routes := c.Routes()
	if len(routes) != 4 {
		t.Fatalf("routes = %+v", routes)
	}
	if routes[0].Path != "/health" || routes[0].Handler != "health" {
		t.Errorf("first route = %+v", routes[0])
	}
}

func TestConfig(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.ReadTimeout == 0 {
		t.Errorf("defaults = %+v", cfg)
	}
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid port")
	}
}
