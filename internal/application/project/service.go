// Package project 实现项目管理应用服务
package project

import (
	"context"
	"fmt"
	"strings"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/domain/repository"
	"webmatic-api/internal/infrastructure/persistence/redis"
	apperrors "webmatic-api/pkg/errors"
	"webmatic-api/pkg/logger"
)

// Service 项目应用服务,读路径走Redis读穿透缓存
type Service struct {
	projects repository.ProjectRepository
	chats    repository.ChatRepository
	runs     repository.RunRepository
	cache    *redis.Cache
}

// NewService 创建项目应用服务,cache可为nil
func NewService(
	projects repository.ProjectRepository,
	chats repository.ChatRepository,
	runs repository.RunRepository,
	cache *redis.Cache,
) *Service {
	return &Service{
		projects: projects,
		chats:    chats,
		runs:     runs,
		cache:    cache,
	}
}

// cacheKey 项目缓存键
func cacheKey(projectID string) string {
	return fmt.Sprintf("project:%s", projectID)
}

// Create 创建项目
func (s *Service) Create(ctx context.Context, ownerID, name, description string) (*entity.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("项目名称不能为空")
	}

	project := entity.NewProject(ownerID, name, strings.TrimSpace(description))
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get 查询项目,优先读缓存
func (s *Service) Get(ctx context.Context, projectID string) (*entity.Project, error) {
	if s.cache == nil {
		return s.projects.GetByID(ctx, projectID)
	}

	var project entity.Project
	err := s.cache.GetOrLoad(ctx, cacheKey(projectID), &project, func(ctx context.Context) (any, error) {
		return s.projects.GetByID(ctx, projectID)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List 分页查询项目
func (s *Service) List(ctx context.Context, ownerID string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	return s.projects.List(ctx, ownerID, page)
}

// Update 更新项目基础信息
func (s *Service) Update(ctx context.Context, projectID, name, description string) (*entity.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		project.Name = name
	}
	if description = strings.TrimSpace(description); description != "" {
		project.Description = description
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.InvalidateProject(ctx, projectID)
	return project, nil
}

// Delete 删除项目
func (s *Service) Delete(ctx context.Context, projectID string) error {
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.InvalidateProject(ctx, projectID)
	return nil
}

// AppendChat 追加用户会话消息,项目必须存在
func (s *Service) AppendChat(ctx context.Context, projectID, content string) (*entity.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("消息内容不能为空")
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	msg := entity.NewChatMessage(projectID, entity.ChatRoleUser, content)
	if err := s.chats.Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListChat 查询项目全部会话消息
func (s *Service) ListChat(ctx context.Context, projectID string) ([]*entity.ChatMessage, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.chats.ListByProject(ctx, projectID)
}

// ListRuns 分页查询项目运行记录
func (s *Service) ListRuns(ctx context.Context, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.Run], error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.runs.ListByProject(ctx, projectID, page)
}

// InvalidateProject 使项目缓存失效
func (s *Service) InvalidateProject(ctx context.Context, projectID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(projectID)); err != nil {
		logger.Warn(ctx, "删除项目缓存失败", err, "project_id", projectID)
	}
}
