package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole 会话消息角色
type ChatRole string

const (
	// ChatRoleUser 用户消息
	ChatRoleUser ChatRole = "user"
	// ChatRoleAssistant 助手消息
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage 项目会话消息
type ChatMessage struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessage 创建会话消息
func NewChatMessage(projectID string, role ChatRole, content string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
