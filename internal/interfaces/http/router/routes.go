package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"webmatic-api/internal/config"
	"webmatic-api/internal/infrastructure/persistence/redis"
	"webmatic-api/internal/interfaces/http/middleware"
	"webmatic-api/pkg/utils"
)

// registerSystemRoutes 注册健康检查与指标路由
func registerSystemRoutes(engine *gin.Engine, h *Handlers) {
	engine.GET("/health", h.Health.Health)
	engine.GET("/live", h.Health.Live)
	engine.GET("/ready", h.Health.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerAPIRoutes 注册业务路由
func registerAPIRoutes(engine *gin.Engine, cfg *config.Config, jwtManager *utils.JWTManager, limiter *redis.RateLimiter, h *Handlers) {
	// 会话读路由开放访问,便于预览页轮询
	engine.GET("/v1/projects/:pid/chat", h.Project.ListChat)

	v1 := engine.Group("/v1")

	skipPaths := []string{
		"/v1/auth",
	}
	v1.Use(middleware.Auth(jwtManager, skipPaths))

	if cfg.RateLimit.Enabled && limiter != nil {
		v1.Use(middleware.RateLimit(limiter))
	}

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	projects := v1.Group("/projects")
	{
		projects.POST("", h.Project.Create)
		projects.GET("", h.Project.List)
		projects.POST("/from-template", h.Template.FromTemplate)
		projects.GET("/:pid", h.Project.Get)
		projects.PUT("/:pid", h.Project.Update)
		projects.DELETE("/:pid", h.Project.Delete)

		projects.POST("/:pid/chat", h.Project.AppendChat)
		projects.GET("/:pid/runs", h.Project.ListRuns)

		projects.POST("/:pid/scaffold", h.Generate.Scaffold)
		projects.POST("/:pid/generate", h.Generate.Generate)
		projects.POST("/:pid/compare", h.Generate.Compare)
	}

	templates := v1.Group("/templates")
	{
		templates.GET("", h.Template.List)
		templates.GET("/:tid", h.Template.Get)
	}
}
