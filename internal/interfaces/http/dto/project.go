package dto

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description" binding:"max=4000"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"max=128"`
	Description string `json:"description" binding:"max=4000"`
}

// AppendChatRequest 追加会话消息请求
type AppendChatRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}
