// Package throttle paces upstream requests.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter blocks until the next upstream request may go out.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Delay sleeps a fixed duration on every call.
type Delay struct {
	d     time.Duration
	after func(time.Duration) <-chan time.Time
}

// NewDelay returns a Delay of d. A non-positive d never blocks.
func NewDelay(d time.Duration) *Delay {
	return &Delay{d: d, after: time.After}
}

// Wait sleeps for the configured delay or until ctx is done.
func (l *Delay) Wait(ctx context.Context) error {
	if l.d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.after(l.d):
		return nil
	}
}

// TokenBucket admits rps requests per second with bursts of up to burst.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket returns a token bucket limiter.
func NewTokenBucket(rps float64, burst int) *TokenBucket {
	return &TokenBucket{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until a token is available.
func (l *TokenBucket) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// None never blocks.
type None struct{}

// Wait returns ctx.Err().
func (None) Wait(ctx context.Context) error { return ctx.Err() }
