package chi

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kailas-cloud/questionbank/internal/domain"
	"github.com/kailas-cloud/questionbank/internal/metrics"
)

const (
	// limiterIdleTTL is how long an organization's bucket survives without requests.
	limiterIdleTTL = 5 * time.Minute
	// limiterSweepInterval bounds how often idle buckets are swept.
	limiterSweepInterval = 3 * time.Minute
)

// orgEntry holds a token bucket and the last time its organization was seen.
type orgEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// orgLimiter hands out one token bucket per organization. Buckets idle for
// longer than limiterIdleTTL are dropped on the next sweep.
type orgLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*orgEntry
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newOrgLimiter(rps float64, burst int) *orgLimiter {
	if burst < 1 {
		burst = 1
	}
	return &orgLimiter{
		limiters:  make(map[string]*orgEntry),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *orgLimiter) get(org string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterSweepInterval {
		l.sweep(now)
	}

	e, ok := l.limiters[org]
	if !ok {
		e = &orgEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[org] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep removes idle buckets. Caller holds l.mu.
func (l *orgLimiter) sweep(now time.Time) {
	for org, e := range l.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(l.limiters, org)
		}
	}
	l.lastSweep = now
}

func (l *orgLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RateLimitMiddleware limits requests per organization. Must run after
// TenantMiddleware. A non-positive rps disables limiting.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		limiter := newOrgLimiter(rps, burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			org := OrganizationFromContext(r.Context())
			if !limiter.get(org).Allow() {
				metrics.RateLimited()
				writeSentinel(w, domain.ErrRateLimited, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
