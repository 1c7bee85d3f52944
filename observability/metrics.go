package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the bot's metric instruments.
type Metrics struct {
	providerCalls    metric.Int64Counter
	providerDuration metric.Float64Histogram
	generations      metric.Int64Counter
	commands         metric.Int64Counter
	catalogWrites    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.providerCalls, err = meter.Int64Counter("slaybot.provider.calls",
		metric.WithDescription("Rephrase calls by provider and status")); err != nil {
		return nil, fmt.Errorf("creating provider.calls counter: %w", err)
	}
	if m.providerDuration, err = meter.Float64Histogram("slaybot.provider.duration",
		metric.WithDescription("Rephrase call duration"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating provider.duration histogram: %w", err)
	}
	if m.generations, err = meter.Int64Counter("slaybot.generations",
		metric.WithDescription("Generation requests by outcome")); err != nil {
		return nil, fmt.Errorf("creating generations counter: %w", err)
	}
	if m.commands, err = meter.Int64Counter("slaybot.commands",
		metric.WithDescription("Handled chat commands")); err != nil {
		return nil, fmt.Errorf("creating commands counter: %w", err)
	}
	if m.catalogWrites, err = meter.Int64Counter("slaybot.catalog.writes",
		metric.WithDescription("Sticker catalog mutations by operation and status")); err != nil {
		return nil, fmt.Errorf("creating catalog.writes counter: %w", err)
	}
	return &m, nil
}

// RecordProviderCall records one provider invocation.
func (m *Metrics) RecordProviderCall(ctx context.Context, provider, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.providerCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.providerDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

// RecordGeneration records the outcome of a whole generation request.
func (m *Metrics) RecordGeneration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.generations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordCommand records a dispatched chat command.
func (m *Metrics) RecordCommand(ctx context.Context, command string) {
	if m == nil {
		return
	}
	m.commands.Add(ctx, 1, metric.WithAttributes(attribute.String("command", command)))
}

// RecordCatalogWrite records a catalog mutation.
func (m *Metrics) RecordCatalogWrite(ctx context.Context, op, status string) {
	if m == nil {
		return
	}
	m.catalogWrites.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("status", status),
	))
}
