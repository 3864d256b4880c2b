package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	bucketIdleExpiry     = 1 * time.Hour
	bucketCleanupPeriod  = 10 * time.Minute
	rateLimitSecondsUnit = 60.0
)

// bucket tracks rate limit state for a single client
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// RateLimiter implements token bucket rate limiting per client address.
// Buckets idle for an hour are evicted by the cache janitor.
type RateLimiter struct {
	buckets        *cache.Cache
	maxTokens      float64 // bucket capacity, the allowed burst
	refillRate     float64 // tokens added per second
	trustedProxies []netip.Prefix
	now            func() time.Time
}

// NewRateLimiter returns nil when requestsPerMinute is 0, which disables limiting.
// X-Forwarded-For is only read from peers inside trustedProxies.
func NewRateLimiter(requestsPerMinute, burst int, trustedProxies ...netip.Prefix) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}

	return &RateLimiter{
		buckets:        cache.New(bucketIdleExpiry, bucketCleanupPeriod),
		maxTokens:      float64(burst),
		refillRate:     float64(requestsPerMinute) / rateLimitSecondsUnit,
		trustedProxies: trustedProxies,
		now:            time.Now,
	}
}

// Limit rejects requests over the limit by calling onLimited instead of next
func (rl *RateLimiter) Limit(onLimited http.HandlerFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.clientKey(r)
			if !rl.allow(key) {
				ctxzap.Warn(r.Context(), "rate limit exceeded", zap.String("client", key))
				onLimited(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allow checks if request is allowed under rate limit
func (rl *RateLimiter) allow(key string) bool {
	b := rl.bucketFor(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := rl.now()

	// Refill tokens based on elapsed time
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * rl.refillRate
	if b.tokens > rl.maxTokens {
		b.tokens = rl.maxTokens
	}
	b.lastRefill = now

	// re-set to push the idle expiry forward
	rl.buckets.Set(key, b, cache.DefaultExpiration)

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}

	return false
}

func (rl *RateLimiter) bucketFor(key string) *bucket {
	if v, ok := rl.buckets.Get(key); ok {
		return v.(*bucket)
	}

	b := &bucket{tokens: rl.maxTokens, lastRefill: rl.now()}
	if err := rl.buckets.Add(key, b, cache.DefaultExpiration); err != nil {
		// another request created it first
		if v, ok := rl.buckets.Get(key); ok {
			return v.(*bucket)
		}
	}

	return b
}

// clientKey identifies the caller by the TCP peer address. When the peer is a
// trusted proxy, X-Forwarded-For is walked from the right and the first
// address not owned by a trusted proxy is used.
func (rl *RateLimiter) clientKey(r *http.Request) string {
	peer := peerAddr(r.RemoteAddr)
	addr, err := netip.ParseAddr(peer)
	if err != nil || !rl.trusted(addr) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop, ok := parseHop(strings.TrimSpace(hops[i]))
		if !ok {
			// unparseable hop, stop trusting the rest of the chain
			break
		}
		if !rl.trusted(hop) {
			return hop.Unmap().String()
		}
	}

	return peer
}

func (rl *RateLimiter) trusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range rl.trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// parseHop accepts "ip" and "ip:port"; some proxies append the port
func parseHop(s string) (netip.Addr, bool) {
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr, true
	}
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr(), true
	}
	return netip.Addr{}, false
}

func peerAddr(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
