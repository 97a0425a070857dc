package repository

import (
	"context"

	"webmatic-api/internal/domain/entity"
)

// RunRepository 运行记录仓储接口
type RunRepository interface {
	// Create 创建运行记录
	Create(ctx context.Context, run *entity.Run) error
	// ListByProject 分页查询项目的运行记录,按时间倒序
	ListByProject(ctx context.Context, projectID string, page Pagination) (*PagedResult[*entity.Run], error)
}
