package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rackworks/catalog/internal/config"
	"github.com/rackworks/catalog/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// WriteLimiter throttles mutating catalog endpoints per client IP with a
// redis token bucket. A nil bucket (no redis configured) disables it.
type WriteLimiter struct {
	bucket  *TokenBucket
	holder  *config.CatalogConfigHolder
	log     *zap.Logger
	metrics *metrics.Metrics
}

type WriteLimiterParams struct {
	fx.In

	Bucket  *TokenBucket `optional:"true"`
	Holder  *config.CatalogConfigHolder
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func NewWriteLimiter(p WriteLimiterParams) *WriteLimiter {
	return &WriteLimiter{
		bucket:  p.Bucket,
		holder:  p.Holder,
		log:     p.Log.Named("ratelimit"),
		metrics: p.Metrics,
	}
}

func (l *WriteLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.bucket == nil {
			c.Next()
			return
		}

		cfg := l.holder.Get()
		key := "catalog:write:" + c.ClientIP()
		result, err := l.bucket.Allow(c.Request.Context(), key, float64(cfg.WriteRatePerSec), cfg.WriteBurst)
		if err != nil {
			// Redis being down must not take writes down with it.
			l.log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !result.Allowed {
			l.metrics.RecordRateLimitDenied(c.Request.Context(), c.FullPath(), "token_bucket")
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"type":    "rate_limited",
					"message": "too many write requests",
				},
			})
			return
		}

		c.Next()
	}
}
