package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunStage 运行阶段
type RunStage string

const (
	// RunStagePlan 方案规划阶段
	RunStagePlan RunStage = "plan"
	// RunStageGenerate 代码生成阶段
	RunStageGenerate RunStage = "generate"
	// RunStageCompare 模型对比阶段
	RunStageCompare RunStage = "compare"
)

// RunMode 运行模式
type RunMode string

const (
	// RunModeAI 模型生成成功
	RunModeAI RunMode = "ai"
	// RunModeStub 回退到确定性桩实现
	RunModeStub RunMode = "stub"
)

// RunStatus 运行状态
type RunStatus string

const (
	// RunStatusSuccess 运行成功
	RunStatusSuccess RunStatus = "success"
	// RunStatusFallback 模型失败后回退成功
	RunStatusFallback RunStatus = "fallback"
)

// QualityDetail 质量评分明细:各部分条目数、
// 条目数得分、关键词得分与命中的关键词列表
type QualityDetail struct {
	Counts       map[string]int `json:"counts,omitempty"`
	CountScore   int            `json:"count_score"`
	KeywordScore int            `json:"keyword_score"`
	KeywordsHit  []string       `json:"keywords_hit,omitempty"`
	Reason       string         `json:"reason,omitempty"`
}

// Run 一次生成运行的审计记录
type Run struct {
	ID            string         `json:"id"`
	ProjectID     string         `json:"project_id"`
	Stage         RunStage       `json:"stage"`
	Provider      string         `json:"provider"`
	Model         string         `json:"model"`
	Mode          RunMode        `json:"mode"`
	Status        RunStatus      `json:"status"`
	Error         string         `json:"error,omitempty"`
	PlanCounts    map[string]int `json:"plan_counts,omitempty"`
	QualityScore  *int           `json:"quality_score,omitempty"`
	QualityDetail *QualityDetail `json:"quality_detail,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NewRun 创建运行记录
func NewRun(projectID string, stage RunStage) *Run {
	return &Run{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Stage:     stage,
		CreatedAt: time.Now(),
	}
}
