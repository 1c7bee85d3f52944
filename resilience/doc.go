// Package resilience provides the fault-tolerance primitives used around
// outbound calls: retry with exponential backoff, a circuit breaker per
// remote API, a token bucket rate limiter for chat sends, and a bulkhead
// capping concurrent generations.
package resilience
