package dto

import (
	"webmatic-api/internal/application/scaffold"
	"webmatic-api/internal/domain/entity"
)

// GenerateRequest 规划/生成请求,provider取auto/claude/gpt
type GenerateRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// CompareRequest 模型对比请求,组合为空时使用默认组合
type CompareRequest struct {
	Candidates []scaffold.CompareCandidate `json:"candidates" binding:"max=4"`
}

// GenerateResponse 规划/生成响应
type GenerateResponse struct {
	Project *entity.Project `json:"project"`
	Run     *entity.Run     `json:"run"`
}
