// Package ratelimit provides a token bucket limiter for outbound API
// clients. Each client owns one limiter for the single host it talks to.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a blocking token bucket rate limiter.
type Limiter struct {
	bucket *rate.Limiter
}

// New creates a limiter allowing rps requests per second with the given
// burst size.
func New(rps float64, burst int) *Limiter {
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wait blocks until a request is allowed or the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}

// Allow reports whether a request may proceed right now without blocking.
func (l *Limiter) Allow() bool {
	return l.bucket.Allow()
}
