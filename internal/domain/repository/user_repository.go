package repository

import (
	"context"

	"webmatic-api/internal/domain/entity"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *entity.User) error
	// GetByID 按ID查询用户
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail 按邮箱查询用户
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
