// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus 项目状态
type ProjectStatus string

const (
	// ProjectStatusCreated 已创建,尚未规划
	ProjectStatusCreated ProjectStatus = "created"
	// ProjectStatusPlanned 已生成实施方案
	ProjectStatusPlanned ProjectStatus = "planned"
	// ProjectStatusGenerated 已生成代码产物
	ProjectStatusGenerated ProjectStatus = "generated"
)

// Plan 实施方案,按前端/后端/数据库三部分组织
type Plan struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Database []string `json:"database"`
}

// IsEmpty 判断方案是否为空
func (p *Plan) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Frontend) == 0 && len(p.Backend) == 0 && len(p.Database) == 0
}

// SectionCounts 各部分条目数
func (p *Plan) SectionCounts() map[string]int {
	if p == nil {
		return map[string]int{"frontend": 0, "backend": 0, "database": 0}
	}
	return map[string]int{
		"frontend": len(p.Frontend),
		"backend":  len(p.Backend),
		"database": len(p.Database),
	}
}

// ArtifactFile 产物中的单个文件
type ArtifactFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Artifact 代码产物,含文件列表与HTML预览
type Artifact struct {
	Files       []ArtifactFile `json:"files"`
	HTMLPreview string         `json:"html_preview"`
}

// Project 项目聚合根
type Project struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Plan        *Plan         `json:"plan,omitempty"`
	Artifact    *Artifact     `json:"artifact,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewProject 创建项目
func NewProject(ownerID, name, description string) *Project {
	now := time.Now()
	return &Project{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Status:      ProjectStatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyPlan 应用实施方案并推进状态
func (p *Project) ApplyPlan(plan *Plan) {
	p.Plan = plan
	p.Status = ProjectStatusPlanned
	p.UpdatedAt = time.Now()
}

// ApplyArtifact 应用代码产物并推进状态
func (p *Project) ApplyArtifact(artifact *Artifact) {
	p.Artifact = artifact
	p.Status = ProjectStatusGenerated
	p.UpdatedAt = time.Now()
}
