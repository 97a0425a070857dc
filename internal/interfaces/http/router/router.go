// Package router 组装HTTP路由与中间件
package router

import (
	"github.com/gin-gonic/gin"

	"webmatic-api/internal/config"
	"webmatic-api/internal/infrastructure/persistence/redis"
	"webmatic-api/internal/interfaces/http/handler"
	"webmatic-api/internal/interfaces/http/middleware"
	"webmatic-api/pkg/utils"
)

// Handlers 路由所需的处理器集合
type Handlers struct {
	Auth     *handler.AuthHandler
	Project  *handler.ProjectHandler
	Generate *handler.GenerateHandler
	Template *handler.TemplateHandler
	Health   *handler.HealthHandler
}

// New 构建gin引擎
func New(cfg *config.Config, jwtManager *utils.JWTManager, limiter *redis.RateLimiter, h *Handlers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CORS(),
	)

	if cfg.Trace.Enabled {
		engine.Use(middleware.Trace("webmatic-api"), middleware.TraceContext())
	}

	engine.Use(middleware.Metrics(), middleware.Audit())

	registerSystemRoutes(engine, h)
	registerAPIRoutes(engine, cfg, jwtManager, limiter, h)

	return engine
}
