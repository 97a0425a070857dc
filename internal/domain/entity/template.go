package entity

import (
	"time"

	"github.com/google/uuid"
)

// TemplatePrompts 模板内置提示词
type TemplatePrompts struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Template 项目模板,携带可直接用于规划的描述清单
type Template struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	Description        string          `json:"description"`
	Tags               []string        `json:"tags"`
	Prompts            TemplatePrompts `json:"prompts"`
	Entities           []string        `json:"entities"`
	APIEndpoints       []string        `json:"api_endpoints"`
	UIStructure        []string        `json:"ui_structure"`
	Integrations       []string        `json:"integrations"`
	AcceptanceCriteria []string        `json:"acceptance_criteria"`
	Tests              []string        `json:"tests"`
	Version            string          `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
}

// NewTemplate 创建模板
func NewTemplate(name, category, description string) *Template {
	return &Template{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    category,
		Description: description,
		Version:     "1.0.0",
		CreatedAt:   time.Now(),
	}
}
