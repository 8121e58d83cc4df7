package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/people-notes-backend/internal/http/response"
	"github.com/yungbote/people-notes-backend/internal/observability"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
	"github.com/yungbote/people-notes-backend/internal/platform/ratelimit"
)

const codeRateLimited = "rate_limited"

var errRateLimited = errors.New("too many requests, retry later")

// RateLimit throttles by client ip. A nil limiter disables it. Limiter
// failures let the request through.
func RateLimit(limiter ratelimit.Limiter, m *observability.Metrics, log *logger.Logger) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		res, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			if log != nil {
				log.Error("rate limit check failed", "error", err, "key", key)
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retry := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			m.IncRateLimited(routeOf(c))
			if log != nil {
				log.Warn("request rate limited",
					"key", key,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
			}
			response.RespondError(c, http.StatusTooManyRequests, codeRateLimited, errRateLimited)
			return
		}
		c.Next()
	}
}
