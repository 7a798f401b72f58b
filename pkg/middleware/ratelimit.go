package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for the per-client rate limiter
type RateLimitConfig struct {
	PerSecond int
	Burst     int
	// SkipPaths are never limited
	SkipPaths []string
	// IdleTTL is how long an unused client bucket is kept
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	lastGC   time.Time
}

func newLimiterStore(cfg RateLimitConfig) *limiterStore {
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.PerSecond
	}
	idleTTL := cfg.IdleTTL
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &limiterStore{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(cfg.PerSecond),
		burst:    burst,
		idleTTL:  idleTTL,
		lastGC:   time.Now(),
	}
}

func (s *limiterStore) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastGC) > s.idleTTL {
		for k, entry := range s.limiters {
			if now.Sub(entry.lastSeen) > s.idleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastGC = now
	}

	if entry, ok := s.limiters[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	limiter := rate.NewLimiter(s.limit, s.burst)
	s.limiters[key] = &clientLimiter{limiter: limiter, lastSeen: now}
	return limiter
}

// RateLimit limits requests per client IP with a token bucket.
// A non-positive PerSecond disables limiting.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.PerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := newLimiterStore(cfg)

	return func(c *gin.Context) {
		for _, path := range cfg.SkipPaths {
			if matchPath(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		if !store.get(c.ClientIP(), time.Now()).Allow() {
			c.Header("Retry-After", strconv.Itoa(1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Error(response.ErrCodeTooManyRequests, "too many requests"))
			return
		}

		c.Next()
	}
}
