package scaffold

import (
	"sort"
	"strings"

	"webmatic-api/internal/domain/entity"
)

// CompareCandidate 对比的模型组合
type CompareCandidate struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// DefaultCompareCandidates 默认对比组合,首个为基线
func DefaultCompareCandidates() []CompareCandidate {
	return []CompareCandidate{
		{Provider: ProviderClaude, Model: "claude-4-sonnet"},
		{Provider: ProviderGPT, Model: "gpt-5"},
	}
}

// SectionDiff 单部分相对基线的三个集合:仅基线有、仅该组合有、双方交集
type SectionDiff struct {
	OnlyInBaseline []string `json:"only_in_baseline"`
	OnlyInVariant  []string `json:"only_in_variant"`
	Overlap        []string `json:"overlap"`
}

// PlanDiff 方案相对基线的差异
type PlanDiff struct {
	Frontend SectionDiff `json:"frontend"`
	Backend  SectionDiff `json:"backend"`
	Database SectionDiff `json:"database"`
}

// IsEmpty 判断两方案是否无差异,交集不计
func (d *PlanDiff) IsEmpty() bool {
	return len(d.Frontend.OnlyInBaseline) == 0 && len(d.Frontend.OnlyInVariant) == 0 &&
		len(d.Backend.OnlyInBaseline) == 0 && len(d.Backend.OnlyInVariant) == 0 &&
		len(d.Database.OnlyInBaseline) == 0 && len(d.Database.OnlyInVariant) == 0
}

// CandidateResult 单个组合的对比结果
type CandidateResult struct {
	Provider      string                `json:"provider"`
	Model         string                `json:"model"`
	Mode          entity.RunMode        `json:"mode"`
	Plan          *entity.Plan          `json:"plan"`
	QualityScore  int                   `json:"quality_score"`
	QualityDetail *entity.QualityDetail `json:"quality_detail"`
	Diff          *PlanDiff             `json:"diff,omitempty"`
	Error         string                `json:"error,omitempty"`
}

// CompareResult 对比流程结果,Baseline为基线组合下标
type CompareResult struct {
	Baseline   int               `json:"baseline"`
	Candidates []CandidateResult `json:"candidates"`
}

// DiffPlans 计算other相对base的逐部分差异
func DiffPlans(base, other *entity.Plan) *PlanDiff {
	return &PlanDiff{
		Frontend: diffStringSets(sectionOf(base, "frontend"), sectionOf(other, "frontend")),
		Backend:  diffStringSets(sectionOf(base, "backend"), sectionOf(other, "backend")),
		Database: diffStringSets(sectionOf(base, "database"), sectionOf(other, "database")),
	}
}

func sectionOf(plan *entity.Plan, name string) []string {
	if plan == nil {
		return nil
	}
	switch name {
	case "frontend":
		return plan.Frontend
	case "backend":
		return plan.Backend
	default:
		return plan.Database
	}
}

// normalizeStringSet 去重排序,条目去除首尾空白
func normalizeStringSet(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(item)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// diffStringSets 计算base与other的独有条目与交集,结果各自有序
func diffStringSets(base, other []string) SectionDiff {
	baseSet := toSet(normalizeStringSet(base))
	otherSet := toSet(normalizeStringSet(other))

	var diff SectionDiff
	for s := range baseSet {
		if _, ok := otherSet[s]; ok {
			diff.Overlap = append(diff.Overlap, s)
		} else {
			diff.OnlyInBaseline = append(diff.OnlyInBaseline, s)
		}
	}
	for s := range otherSet {
		if _, ok := baseSet[s]; !ok {
			diff.OnlyInVariant = append(diff.OnlyInVariant, s)
		}
	}
	sort.Strings(diff.OnlyInBaseline)
	sort.Strings(diff.OnlyInVariant)
	sort.Strings(diff.Overlap)
	return diff
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
