package fetch

import (
	"github.com/okian/rosterlab/internal/adapters/throttle"
	"github.com/okian/rosterlab/pkg/logger"
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithLimiter sets the wait inserted after each network fetch in a batch.
func WithLimiter(l throttle.Limiter) Option {
	return func(r *Resolver) {
		if l != nil {
			r.limiter = l
		}
	}
}

// WithLogger sets a custom logger for the resolver.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}
