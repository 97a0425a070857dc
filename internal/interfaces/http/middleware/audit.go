package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"webmatic-api/pkg/logger"
)

// Audit 访问日志中间件,写操作记录更详细的字段
func Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if userID := CurrentUserID(c); userID != "" {
			fields = append(fields, "user_id", userID)
		}

		ctx := c.Request.Context()
		if c.Writer.Status() >= 500 {
			logger.Error(ctx, "请求处理失败", nil, fields...)
		} else {
			logger.Info(ctx, "请求处理完成", fields...)
		}
	}
}
