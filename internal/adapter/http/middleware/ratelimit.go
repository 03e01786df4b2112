package middleware

import (
	"net/http"
	"sync"
	"time"

	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 5 * time.Minute

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token bucket per client IP. Idle buckets are dropped
// lazily on later requests.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*clientLimiter)
		lastScan = time.Now()
	)

	return func(c *gin.Context) {
		now := time.Now()
		ip := c.ClientIP()

		mu.Lock()
		if now.Sub(lastScan) > limiterIdleTTL {
			for key, l := range limiters {
				if now.Sub(l.lastSeen) > limiterIdleTTL {
					delete(limiters, key)
				}
			}
			lastScan = now
		}
		l, ok := limiters[ip]
		if !ok {
			l = &clientLimiter{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
			limiters[ip] = l
		}
		l.lastSeen = now
		allowed := l.lim.AllowN(now, 1)
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				apierrors.CreateError(http.StatusTooManyRequests, apierrors.MsgTooManyRequests, GetLang(c)),
			)
			return
		}
		c.Next()
	}
}
