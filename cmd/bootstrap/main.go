// bootstrap 初始化数据库结构并写入种子数据
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"webmatic-api/internal/config"
	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/infrastructure/persistence/postgres"
	apperrors "webmatic-api/pkg/errors"
	"webmatic-api/pkg/logger"
)

// schema 数据库结构定义
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
    id          UUID PRIMARY KEY,
    owner_id    UUID NOT NULL,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    plan        JSONB,
    artifact    JSONB,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects (owner_id);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects (status);

CREATE TABLE IF NOT EXISTS chat_messages (
    id         UUID PRIMARY KEY,
    project_id UUID NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    role       TEXT NOT NULL,
    content    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_project ON chat_messages (project_id, created_at);

CREATE TABLE IF NOT EXISTS runs (
    id             UUID PRIMARY KEY,
    project_id     UUID NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    stage          TEXT NOT NULL,
    provider       TEXT NOT NULL DEFAULT '',
    model          TEXT NOT NULL DEFAULT '',
    mode           TEXT NOT NULL,
    status         TEXT NOT NULL,
    error          TEXT,
    plan_counts    JSONB,
    quality_score  INTEGER,
    quality_detail JSONB,
    created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_project ON runs (project_id, created_at DESC);

CREATE TABLE IF NOT EXISTS templates (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    category    TEXT NOT NULL,
    description TEXT NOT NULL,
    tags        TEXT[] NOT NULL DEFAULT '{}',
    manifest    JSONB NOT NULL,
    version     TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_templates_category ON templates (category);
`

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	ctx := context.Background()

	client, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "连接PostgreSQL失败", err)
	}
	defer client.Close()

	if _, err := client.DB().ExecContext(ctx, schema); err != nil {
		logger.Fatal(ctx, "创建数据库结构失败", err)
	}
	logger.Info(ctx, "数据库结构就绪")

	if err := seedAdmin(ctx, client); err != nil {
		logger.Fatal(ctx, "写入管理员用户失败", err)
	}
	if err := seedTemplates(ctx, client); err != nil {
		logger.Fatal(ctx, "写入模板种子失败", err)
	}

	logger.Info(ctx, "初始化完成")
}

// seedAdmin 创建管理员账户,已存在时跳过
func seedAdmin(ctx context.Context, client *postgres.Client) error {
	users := postgres.NewUserRepo(client)

	email := envOr("ADMIN_EMAIL", "admin@webmatic.local")
	if _, err := users.GetByEmail(ctx, email); err == nil {
		logger.Info(ctx, "管理员已存在,跳过", "email", email)
		return nil
	} else if appErr, ok := apperrors.AsAppError(err); !ok || appErr.Code != apperrors.CodeUserNotFound {
		return err
	}

	admin := entity.NewUser(email, "admin")
	if err := admin.SetPassword(envOr("ADMIN_PASSWORD", "change-me-now")); err != nil {
		return err
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info(ctx, "管理员账户已创建", "email", email)
	return nil
}

// seedTemplates 写入内置模板,库中已有模板时跳过
func seedTemplates(ctx context.Context, client *postgres.Client) error {
	templates := postgres.NewTemplateRepo(client)

	count, err := templates.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info(ctx, "模板已存在,跳过", "count", count)
		return nil
	}

	for _, tpl := range builtinTemplates() {
		if err := templates.Create(ctx, tpl); err != nil {
			return err
		}
		logger.Info(ctx, "模板已写入", "name", tpl.Name)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
