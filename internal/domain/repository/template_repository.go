package repository

import (
	"context"

	"webmatic-api/internal/domain/entity"
)

// TemplateRepository 模板仓储接口
type TemplateRepository interface {
	// Create 创建模板
	Create(ctx context.Context, tpl *entity.Template) error
	// GetByID 按ID查询模板
	GetByID(ctx context.Context, id string) (*entity.Template, error)
	// List 查询全部模板,可按分类过滤
	List(ctx context.Context, category string) ([]*entity.Template, error)
	// Count 统计模板数量
	Count(ctx context.Context) (int64, error)
}
