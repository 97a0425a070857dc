// Package auth 实现用户注册登录应用服务
package auth

import (
	"context"
	"errors"
	"strings"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/domain/repository"
	apperrors "webmatic-api/pkg/errors"
	"webmatic-api/pkg/utils"
)

// Service 认证应用服务
type Service struct {
	users repository.UserRepository
	jwt   *utils.JWTManager
}

// NewService 创建认证服务
func NewService(users repository.UserRepository, jwt *utils.JWTManager) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register 注册用户并签发令牌
func (s *Service) Register(ctx context.Context, email, username, password string) (*entity.User, *utils.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.ErrUserExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, nil, err
	}

	user := entity.NewUser(email, username)
	if err := user.SetPassword(password); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeInternal, "密码哈希失败")
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeInternal, "签发令牌失败")
	}
	return user, tokens, nil
}

// Login 校验凭证并签发令牌
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, *utils.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrUnauthorized.WithDetail("邮箱或密码错误")
		}
		return nil, nil, err
	}

	if !user.CheckPassword(password) {
		return nil, nil, apperrors.ErrUnauthorized.WithDetail("邮箱或密码错误")
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeInternal, "签发令牌失败")
	}
	return user, tokens, nil
}

// Refresh 刷新令牌对
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	tokens, err := s.jwt.RefreshTokenPair(refreshToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized.WithDetail("刷新令牌无效")
	}
	return tokens, nil
}
