// Package observability wires OpenTelemetry tracing and metrics.
//
// When telemetry is disabled the global otel providers stay no-op, so
// StartSpan and the Metrics recorders are always safe to call.
//
//	tel, err := observability.Init(ctx, cfg, observability.Resource{Service: "slaybot"})
//	defer tel.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("slaybot"))
//	metrics.RecordProviderCall(ctx, "mistral", "ok", time.Since(start))
package observability
