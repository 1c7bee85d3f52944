package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/slaybot/component"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Enabled: true}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 || cfg.MetricInterval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestInit_Disabled(t *testing.T) {
	tel, err := Init(context.Background(), Config{}, Resource{Service: "slaybot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tel.Enabled() {
		t.Error("expected disabled telemetry")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no-op shutdown, got %v", err)
	}
}

func TestStartSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), "generation", attribute.String(AttrProvider, "mistral"))
	SetSpanAttributes(ctx, attribute.String(AttrOutcome, "failed"))
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status())
	}
	if len(spans[0].Attributes()) != 2 {
		t.Errorf("expected 2 attributes, got %v", spans[0].Attributes())
	}
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	m.RecordProviderCall(ctx, "grok", "ok", 20*time.Millisecond)
	m.RecordGeneration(ctx, "success")
	m.RecordCommand(ctx, "help")
	m.RecordCommand(ctx, "help")
	m.RecordCatalogWrite(ctx, "add", "ok")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			found[metric.Name] = true
			if metric.Name == "slaybot.commands" {
				sum := metric.Data.(metricdata.Sum[int64])
				if sum.DataPoints[0].Value != 2 {
					t.Errorf("expected 2 commands, got %d", sum.DataPoints[0].Value)
				}
			}
		}
	}
	for _, name := range []string{"slaybot.provider.calls", "slaybot.provider.duration", "slaybot.generations", "slaybot.commands", "slaybot.catalog.writes"} {
		if !found[name] {
			t.Errorf("expected metric %s to be collected", name)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordCommand(context.Background(), "help")
}

func TestComponent_DisabledLifecycle(t *testing.T) {
	c := NewComponent(Config{}, Resource{Service: "slaybot"})
	ctx := context.Background()

	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("health before start = %v", h.Status)
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy || h.Message != "export disabled" {
		t.Errorf("health = %+v", h)
	}
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("second Stop() error: %v", err)
	}
}
