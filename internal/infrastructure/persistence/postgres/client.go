// Package postgres 提供PostgreSQL持久化实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"webmatic-api/internal/config"
)

// Client PostgreSQL客户端
type Client struct {
	db *sql.DB
}

// NewClient 创建PostgreSQL客户端
func NewClient(cfg *config.DatabaseConfig) (*Client, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	return &Client{db: db}, nil
}

// DB 获取底层数据库连接
func (c *Client) DB() *sql.DB {
	return c.db
}

// Ping 健康检查
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close 关闭连接
func (c *Client) Close() error {
	return c.db.Close()
}
