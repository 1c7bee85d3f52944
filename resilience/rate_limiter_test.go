package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiter_AllowBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 2})
	clock := &fakeClock{t: time.Unix(0, 0)}
	rl.now = clock.Now
	rl.lastRefill = clock.t

	if !rl.Allow() || !rl.Allow() {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if rl.Allow() {
		t.Fatal("expected third call to be limited")
	}
	clock.Advance(time.Second)
	if !rl.Allow() {
		t.Error("expected a token after one second")
	}
}

func TestRateLimiter_WaitImmediate(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 100, Burst: 1})
	if err := rl.Wait(context.Background()); err != nil {
		t.Errorf("expected immediate token, got %v", err)
	}
}

func TestRateLimiter_WaitCancelledReturnsToken(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1})
	_ = rl.Wait(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if tokens := rl.Tokens(); tokens < -0.01 {
		t.Errorf("expected cancelled reservation to be released, got %f tokens", tokens)
	}
}
