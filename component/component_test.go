package component

import (
	"context"
	"errors"
	"testing"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	order    *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	if m.order != nil && m.startErr == nil {
		*m.order = append(*m.order, "start:"+m.name)
	}
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	if m.order != nil {
		*m.order = append(*m.order, "stop:"+m.name)
	}
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) Health { return m.health }

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&mockComponent{name: "storage"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "storage"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&mockComponent{name: "catalog"})

	if got := r.Get("catalog"); got == nil || got.Name() != "catalog" {
		t.Errorf("Get(catalog) = %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Error("expected nil for unregistered component")
	}
	if len(r.All()) != 1 {
		t.Errorf("All() = %d components", len(r.All()))
	}
}

func TestStartStopOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	for _, name := range []string{"storage", "catalog", "bot"} {
		_ = r.Register(&mockComponent{name: name, order: &order})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{"start:storage", "start:catalog", "start:bot", "stop:bot", "stop:catalog", "stop:storage"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestStartFailureStopsOnlyStarted(t *testing.T) {
	r := NewRegistry()
	var order []string
	_ = r.Register(&mockComponent{name: "storage", order: &order})
	_ = r.Register(&mockComponent{name: "catalog", order: &order, startErr: errors.New("bad json")})
	_ = r.Register(&mockComponent{name: "bot", order: &order})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error from StartAll")
	}
	_ = r.StopAll(context.Background())

	want := []string{"start:storage", "stop:storage"}
	if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestStopAllCollectsErrors(t *testing.T) {
	r := NewRegistry()
	errA, errB := errors.New("a"), errors.New("b")
	_ = r.Register(&mockComponent{name: "a", stopErr: errA})
	_ = r.Register(&mockComponent{name: "b", stopErr: errB})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("StopAll() = %v", err)
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&mockComponent{name: "a", health: Health{Name: "a", Status: StatusHealthy}})
	_ = r.Register(&mockComponent{name: "b", health: Health{Name: "b", Status: StatusUnhealthy, Message: "down"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 || results[1].Status != StatusUnhealthy {
		t.Errorf("HealthAll() = %+v", results)
	}
}
