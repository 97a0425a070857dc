// api-server 项目脚手架API服务入口
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	authapp "webmatic-api/internal/application/auth"
	projectapp "webmatic-api/internal/application/project"
	"webmatic-api/internal/application/scaffold"
	templateapp "webmatic-api/internal/application/template"
	"webmatic-api/internal/config"
	"webmatic-api/internal/infrastructure/llm"
	"webmatic-api/internal/infrastructure/persistence/postgres"
	"webmatic-api/internal/infrastructure/persistence/redis"
	"webmatic-api/internal/interfaces/http/handler"
	"webmatic-api/internal/interfaces/http/router"
	"webmatic-api/internal/workflow/chain"
	"webmatic-api/internal/workflow/prompt"
	"webmatic-api/pkg/logger"
	"webmatic-api/pkg/tracer"
	"webmatic-api/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// .env不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	ctx := context.Background()

	if cfg.Trace.Enabled {
		if err := tracer.Init("webmatic-api", cfg.Trace.Endpoint, cfg.Trace.SampleRate); err != nil {
			logger.Fatal(ctx, "初始化追踪失败", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracer.Shutdown(shutdownCtx); err != nil {
				logger.Warn(context.Background(), "关闭追踪失败", err)
			}
		}()
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "连接PostgreSQL失败", err)
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "连接Redis失败", err)
	}
	defer redisClient.Close()

	// 仓储层
	txManager := postgres.NewTxManager(pgClient)
	projectRepo := postgres.NewProjectRepo(pgClient)
	chatRepo := postgres.NewChatRepo(pgClient)
	runRepo := postgres.NewRunRepo(pgClient)
	templateRepo := postgres.NewTemplateRepo(pgClient)
	userRepo := postgres.NewUserRepo(pgClient)

	projectCache := redis.NewCache(redisClient, "project", 5*time.Minute)
	limiter := redis.NewRateLimiter(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window)

	// 工作流层
	factory := llm.NewEinoFactory(&cfg.LLM)
	prompts := prompt.NewRegistry()
	planChain := chain.NewPlanChain(factory, prompts, cfg.Scaffold.Temperature, cfg.Scaffold.PlanMaxTokens)
	artifactChain := chain.NewArtifactChain(factory, prompts, cfg.Scaffold.Temperature, cfg.Scaffold.ArtifactMaxTokens)
	planner := scaffold.NewPlanner(planChain, factory, cfg.LLM.Timeout)
	generator := scaffold.NewGenerator(artifactChain, factory, cfg.LLM.Timeout)

	// 应用层
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpire, cfg.JWT.RefreshExpire)
	projectSvc := projectapp.NewService(projectRepo, chatRepo, runRepo, projectCache)
	scaffoldSvc := scaffold.NewService(projectRepo, chatRepo, runRepo, txManager, planner, generator, projectSvc, cfg.Scaffold.HistoryTurns)
	templateSvc := templateapp.NewService(templateRepo, projectSvc, scaffoldSvc)
	authSvc := authapp.NewService(userRepo, jwtManager)

	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Project:  handler.NewProjectHandler(projectSvc),
		Generate: handler.NewGenerateHandler(scaffoldSvc),
		Template: handler.NewTemplateHandler(templateSvc),
		Health:   handler.NewHealthHandler(pgClient, redisClient),
	}

	engine := router.New(cfg, jwtManager, limiter, handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info(ctx, "HTTP服务启动", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP服务异常退出", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "收到退出信号,开始优雅关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "优雅关闭失败", err)
	}
	logger.Info(ctx, "服务已退出")
}
