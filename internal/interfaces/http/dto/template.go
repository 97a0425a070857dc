package dto

// FromTemplateRequest 基于模板创建项目请求
type FromTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
	Name       string `json:"name" binding:"max=128"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
}
