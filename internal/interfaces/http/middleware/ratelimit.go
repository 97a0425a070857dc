package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webmatic-api/internal/infrastructure/persistence/redis"
	"webmatic-api/pkg/logger"
)

// RateLimit 滑动窗口限流中间件,按用户ID或客户端IP限流。
// 限流器故障时放行,避免Redis抖动拖垮服务。
func RateLimit(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := CurrentUserID(c)
		if key == "" {
			key = c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn(c.Request.Context(), "限流检查失败", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    "RATE_LIMITED",
				"message": "请求过于频繁,请稍后重试",
			})
			return
		}

		c.Next()
	}
}
