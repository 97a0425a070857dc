package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"webmatic-api/internal/domain/entity"
	apperrors "webmatic-api/pkg/errors"
)

// UserRepo 用户仓储PostgreSQL实现
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo 创建用户仓储
func NewUserRepo(client *Client) *UserRepo {
	return &UserRepo{db: client.DB()}
}

// Create 创建用户
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := getQuerier(ctx, r.db).ExecContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}

// GetByID 按ID查询用户
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByEmail 按邮箱查询用户
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users ` + where

	var user entity.User
	err := getQuerier(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}
