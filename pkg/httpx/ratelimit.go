package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/tuenti/pkg/slogx"
	"golang.org/x/time/rate"
)

// Limit is a token bucket refilled with Requests tokens every Window.
type Limit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Endpoint profiles. Each can be overridden with RATELIMIT_<NAME>_REQUESTS,
// RATELIMIT_<NAME>_WINDOW_SEC and RATELIMIT_<NAME>_BURST.
var (
	// sign in, registration, password reset, code checks
	StrictLimit = LimitFromEnv("STRICT", Limit{Requests: 5, Window: time.Minute, Burst: 5})
	// posts, uploads, friend requests
	ModerateLimit = LimitFromEnv("MODERATE", Limit{Requests: 30, Window: time.Minute, Burst: 30})
	// authenticated reads
	LenientLimit = LimitFromEnv("LENIENT", Limit{Requests: 120, Window: time.Minute, Burst: 120})
	// anonymous reads and probes
	PublicLimit = LimitFromEnv("PUBLIC", Limit{Requests: 1000, Window: time.Minute, Burst: 1000})
)

// LimitFromEnv overlays RATELIMIT_<name>_* variables on def. Invalid or
// non-positive values are ignored.
func LimitFromEnv(name string, def Limit) Limit {
	l := def
	if n, ok := positiveEnv("RATELIMIT_" + name + "_REQUESTS"); ok {
		l.Requests = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_WINDOW_SEC"); ok {
		l.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_BURST"); ok {
		l.Burst = n
	}
	return l
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil && n > 0
}

// KeyFunc groups requests into buckets. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AccountKey keys by the authenticated account id.
func AccountKey(r *http.Request) string {
	return AccountID(r.Context())
}

// CompositeKey joins the non-empty keys of fns with sep.
func CompositeKey(sep string, fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

const limiterSweepEvery = 5 * time.Minute

// buckets holds one limiter per key. Idle limiters (full bucket) are swept
// at most every limiterSweepEvery.
type buckets struct {
	limit rate.Limit
	burst int

	m sync.Map // string -> *rate.Limiter

	mu        sync.Mutex
	lastSweep time.Time
}

func (b *buckets) get(key string) *rate.Limiter {
	if l, ok := b.m.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := b.m.LoadOrStore(key, rate.NewLimiter(b.limit, b.burst))
	b.sweep()
	return l.(*rate.Limiter)
}

func (b *buckets) sweep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if time.Since(b.lastSweep) < limiterSweepEvery {
		return
	}
	b.lastSweep = time.Now()
	b.m.Range(func(k, v any) bool {
		if v.(*rate.Limiter).Tokens() >= float64(b.burst) {
			b.m.Delete(k)
		}
		return true
	})
}

// RateLimit rejects requests over l with 429 and a Retry-After header.
func RateLimit(l Limit, key KeyFunc) Middleware {
	b := &buckets{
		limit:     rate.Limit(float64(l.Requests) / l.Window.Seconds()),
		burst:     l.Burst,
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			lim := b.get(k)
			if lim.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := lim.Reserve()
			retry := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.Requests))
			w.Header().Set("X-RateLimit-Window", l.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k, "path", r.URL.Path, "retry_after", retry)

			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
				"Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits per client address.
func RateLimitByIP(l Limit) Middleware {
	return RateLimit(l, ClientIP)
}

// RateLimitByAccount limits per account and address; anonymous callers fall
// back to the address alone. Must run after Authn.
func RateLimitByAccount(l Limit) Middleware {
	return RateLimit(l, CompositeKey(":", AccountKey, ClientIP))
}
