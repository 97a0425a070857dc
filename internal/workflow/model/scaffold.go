// Package model 定义工作流输入输出模型
package model

import "time"

// PlanGenerateInput 方案规划链输入
type PlanGenerateInput struct {
	// Provider 提供方键,空值使用默认提供方
	Provider string
	// Model 覆盖提供方默认模型,必须在允许列表内
	Model string
	// Description 产品描述
	Description string
	// ChatContext 最近会话上下文,已按"role: content"逐行拼接
	ChatContext string
}

// ArtifactGenerateInput 代码生成链输入
type ArtifactGenerateInput struct {
	Provider    string
	Model       string
	Description string
	ChatContext string
	// PlanJSON 当前实施方案的JSON文本,作为生成依据
	PlanJSON string
}

// LLMUsageMeta 一次模型调用的元信息
type LLMUsageMeta struct {
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens,omitempty"`
	CompletionTokens int       `json:"completion_tokens,omitempty"`
	TotalTokens      int       `json:"total_tokens,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
}
