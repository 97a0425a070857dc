package repository

import (
	"context"

	"webmatic-api/internal/domain/entity"
)

// ChatRepository 会话消息仓储接口
type ChatRepository interface {
	// Append 追加消息
	Append(ctx context.Context, msg *entity.ChatMessage) error
	// ListByProject 按项目查询全部消息,按时间升序
	ListByProject(ctx context.Context, projectID string) ([]*entity.ChatMessage, error)
	// ListRecent 查询最近N条消息,按时间升序返回
	ListRecent(ctx context.Context, projectID string, limit int) ([]*entity.ChatMessage, error)
}
