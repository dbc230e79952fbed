package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRateLimiter 每個 window 補滿 requests 個令牌，允許同樣大小的突發
func NewRateLimiter(requests int, window time.Duration) *rate.Limiter {
	if requests <= 0 || window <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

// RateLimit 全域限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)

	return func(c *gin.Context) {
		r := limiter.Reserve()
		if !r.OK() {
			reject(c, window)
			return
		}
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			reject(c, delay)
			return
		}

		c.Next()
	}
}

func reject(c *gin.Context, retryAfter time.Duration) {
	common.LogInfo("Rate limit exceeded",
		zap.String("ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrTooManyRequests.Response(false))
}
