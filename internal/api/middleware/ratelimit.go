package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// visitors holds one token bucket per client IP.
type visitors struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
}

func (v *visitors) allow(ip string, now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	le, ok := v.entries[ip]
	if !ok {
		le = &limiterEntry{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.entries[ip] = le
	}
	le.last = now
	return le.limiter.AllowN(now, 1)
}

func (v *visitors) sweep(idle time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for k, e := range v.entries {
		if time.Since(e.last) > idle {
			delete(v.entries, k)
		}
	}
}

// clientIP returns the peer address. With trustedHops proxies in front of
// the service it takes the X-Forwarded-For entry the outermost of them
// appended; entries to its left are client supplied and ignored.
func clientIP(r *http.Request, trustedHops int) string {
	if xff := r.Header.Get("X-Forwarded-For"); trustedHops > 0 && xff != "" {
		hops := strings.Split(xff, ",")
		i := max(len(hops)-trustedHops, 0)
		if ip := strings.TrimSpace(hops[i]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies an IP-based token bucket limiter. Idle buckets are
// dropped every few minutes until ctx is done. trustedHops is the number of
// reverse proxies whose X-Forwarded-For entries are believed; zero keys on
// the connection's remote address alone.
func RateLimit(ctx context.Context, rps float64, burst, trustedHops int) func(http.Handler) http.Handler {
	v := &visitors{entries: map[string]*limiterEntry{}, rps: rate.Limit(rps), burst: burst}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				v.sweep(10 * time.Minute)
			}
		}
	}()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !v.allow(clientIP(r, trustedHops), time.Now()) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
