package repository

import (
	"context"

	"webmatic-api/internal/domain/entity"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// Create 创建项目
	Create(ctx context.Context, project *entity.Project) error
	// GetByID 按ID查询项目
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// List 分页查询用户的项目
	List(ctx context.Context, ownerID string, page Pagination) (*PagedResult[*entity.Project], error)
	// Update 更新项目
	Update(ctx context.Context, project *entity.Project) error
	// Delete 删除项目
	Delete(ctx context.Context, id string) error
}
