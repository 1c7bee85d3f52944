// Package provider defines the request/response provider abstraction and
// the middlewares composed around it.
//
// A RequestResponse[I, O] is any named backend that turns one input into one
// output. Rephrase backends, LLM adapters and HTTP clients all satisfy it,
// so cross-cutting behavior is written once as a Middleware:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[string, string](log),
//	    provider.WithMetrics[string, string](metrics),
//	    provider.WithTracing[string, string]("rephrase"),
//	)(raw)
//
// Adapt bridges a backend with types [BI, BO] to a domain interface [I, O].
package provider
