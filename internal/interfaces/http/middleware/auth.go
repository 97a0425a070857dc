package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"webmatic-api/pkg/logger"
	"webmatic-api/pkg/utils"
)

// ContextUserIDKey gin上下文中的用户ID键
const ContextUserIDKey = "user_id"

// Auth Bearer令牌认证中间件,SkipPaths中的路径前缀放行
func Auth(jwtManager *utils.JWTManager, skipPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range skipPaths {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "缺少Bearer令牌")
			return
		}

		claims, err := jwtManager.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "令牌无效或已过期")
			return
		}
		if claims.Type != "access" {
			abortUnauthorized(c, "令牌类型错误")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentUserID 获取当前认证用户ID
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    "UNAUTHORIZED",
		"message": "未认证",
		"data":    gin.H{"error_code": "UNAUTHORIZED", "details": detail},
	})
}
