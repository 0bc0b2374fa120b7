package handlers

import (
	"sync"

	"golang.org/x/time/rate"
)

// tenantLimiter hands out one token bucket per tenant. Simulations are
// CPU-bound and unauthenticated clients never reach them, so a small
// in-memory registry is enough.
type tenantLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newTenantLimiter(limit rate.Limit, burst int) *tenantLimiter {
	return &tenantLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether the tenant may run another simulation right now.
func (l *tenantLimiter) Allow(tenantID string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[tenantID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[tenantID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
