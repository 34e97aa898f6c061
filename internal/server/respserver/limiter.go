package respserver

import (
	"net"
	"sync"

	"golang.org/x/time/rate"
)

// ipLimiter enforces a per-IP command budget using token buckets.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	perSec  rate.Limit
	burst   int
}

// newIPLimiter creates a limiter allowing requestsPerSecond commands per
// client IP. Burst equals the per-second rate.
func newIPLimiter(requestsPerSecond int) *ipLimiter {
	return &ipLimiter{
		buckets: make(map[string]*rate.Limiter),
		perSec:  rate.Limit(requestsPerSecond),
		burst:   requestsPerSecond,
	}
}

// allow checks if a request from the given remote address should proceed.
func (l *ipLimiter) allow(remoteAddr string) bool {
	ip := remoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		ip = host
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = rate.NewLimiter(l.perSec, l.burst)
		l.buckets[ip] = b
	}
	return b.Allow()
}
