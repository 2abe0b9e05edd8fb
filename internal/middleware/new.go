package middleware

import (
	"taskpilot/pkg/log"
)

// Middleware bundles the cross-cutting gin middlewares.
type Middleware struct {
	l           log.Logger
	rateLimiter *rateLimiter
}

// New creates the middleware set. requestsPerMin bounds how often any single
// client may hit the webhook.
func New(l log.Logger, requestsPerMin int) Middleware {
	return Middleware{
		l:           l,
		rateLimiter: newRateLimiter(requestsPerMin),
	}
}
