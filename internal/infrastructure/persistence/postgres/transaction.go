package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"webmatic-api/internal/domain/repository"
)

// querier 统一*sql.DB与*sql.Tx的查询能力
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getQuerier 优先使用上下文中的事务
func getQuerier(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(repository.TxKey).(*sql.Tx); ok {
		return tx
	}
	return db
}

// TxManager 事务管理器
type TxManager struct {
	db *sql.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(client *Client) *TxManager {
	return &TxManager{db: client.DB()}
}

// WithTransaction 在事务中执行fn
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	txCtx := context.WithValue(ctx, repository.TxKey, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("回滚事务失败: %v (原错误: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}
