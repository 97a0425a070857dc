// Package port 定义工作流对外依赖的端口接口
package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ChatModelFactory 按提供方获取聊天模型
type ChatModelFactory interface {
	// Get 获取指定提供方的聊天模型,provider为空时使用默认提供方
	Get(ctx context.Context, provider string) (model.BaseChatModel, error)
	// DefaultProvider 默认提供方键
	DefaultProvider() string
	// ModelName 提供方配置的默认模型名
	ModelName(provider string) string
}
