// Package template 实现项目模板应用服务
package template

import (
	"context"
	"strings"

	projectapp "webmatic-api/internal/application/project"
	"webmatic-api/internal/application/scaffold"
	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/domain/repository"
)

// Service 模板应用服务
type Service struct {
	templates repository.TemplateRepository
	projects  *projectapp.Service
	scaffold  *scaffold.Service
}

// NewService 创建模板服务
func NewService(templates repository.TemplateRepository, projects *projectapp.Service, scaffoldSvc *scaffold.Service) *Service {
	return &Service{
		templates: templates,
		projects:  projects,
		scaffold:  scaffoldSvc,
	}
}

// List 查询模板列表
func (s *Service) List(ctx context.Context, category string) ([]*entity.Template, error) {
	return s.templates.List(ctx, category)
}

// Get 查询单个模板
func (s *Service) Get(ctx context.Context, id string) (*entity.Template, error) {
	return s.templates.GetByID(ctx, id)
}

// CreateFromTemplate 基于模板创建项目并立即规划。
// 项目描述由模板清单组合而成,规划走常规编排流程。
func (s *Service) CreateFromTemplate(ctx context.Context, ownerID, templateID, name string, opts scaffold.Options) (*entity.Project, *entity.Run, error) {
	tpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = tpl.Name
	}

	project, err := s.projects.Create(ctx, ownerID, name, composeDescription(tpl))
	if err != nil {
		return nil, nil, err
	}

	return s.scaffold.ScaffoldProject(ctx, project.ID, opts)
}

// composeDescription 将模板清单组合为规划用的产品描述
func composeDescription(tpl *entity.Template) string {
	var sb strings.Builder
	sb.WriteString(tpl.Description)

	writeSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n\n")
		sb.WriteString(title)
		sb.WriteString(":\n")
		for _, item := range items {
			sb.WriteString("- ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
	}

	writeSection("Core entities", tpl.Entities)
	writeSection("API endpoints", tpl.APIEndpoints)
	writeSection("UI structure", tpl.UIStructure)
	writeSection("Integrations", tpl.Integrations)
	writeSection("Acceptance criteria", tpl.AcceptanceCriteria)

	return strings.TrimSpace(sb.String())
}
