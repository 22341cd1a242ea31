package ratelimit

import "context"

// RateLimiter throttles authenticated generic sends per caller.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
