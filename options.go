package picgen

import (
	"log/slog"

	"github.com/mhpenta/picgen/ratelimiter"
)

// Option configures the Generator.
type Option func(*Generator)

// WithLogger sets a structured logger. When set, the generator logs
// attempts, fallbacks, completions, and conversation lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithSink sets the sink used to persist generated image bytes.
// The default writes to the local filesystem.
func WithSink(sink Sink) Option {
	return func(g *Generator) {
		g.sink = sink
	}
}

// WithPriority overrides the default fallback order. Providers without a
// registered client are ignored.
func WithPriority(order ...ProviderID) Option {
	return func(g *Generator) {
		g.priority = g.priority[:0]
		for _, id := range order {
			if _, ok := g.clients[id]; ok {
				g.priority = append(g.priority, id)
			}
		}
	}
}

// WithRateLimiter sets a rate limiter for one provider. A rate-limited
// provider is skipped like an unavailable one and fallback continues.
func WithRateLimiter(id ProviderID, limiter ratelimiter.Limiter) Option {
	return func(g *Generator) {
		g.limiters.Set(string(id), limiter)
	}
}

// WithTokenEstimator overrides the prompt-size estimator used for rate
// limit accounting.
func WithTokenEstimator(estimator TokenEstimator) Option {
	return func(g *Generator) {
		g.estimator = estimator
	}
}
