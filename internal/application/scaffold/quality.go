package scaffold

import (
	"math"
	"strings"

	"webmatic-api/internal/domain/entity"
)

// qualityKeywords 覆盖度关键词,命中越多说明方案考虑越全面
var qualityKeywords = []string{
	"auth", "authentication", "authorization",
	"api", "endpoint", "schema", "database", "migration",
	"testing", "tests", "jest", "pytest",
	"deployment", "deploy",
	"error", "logging", "monitor",
	"security", "performance",
}

const (
	sectionFullCount = 6
	sectionMaxScore  = 20
	keywordFullCount = 10
	keywordMaxScore  = 40
)

// ScorePlan 对方案进行启发式质量评分,返回[0,100]分值与明细。
// 三部分各按条目数贡献至多20分,关键词覆盖贡献至多40分。
// 空方案得0分。
func ScorePlan(plan *entity.Plan) (int, *entity.QualityDetail) {
	if plan.IsEmpty() {
		return 0, &entity.QualityDetail{Reason: "no_plan"}
	}

	counts := map[string]int{
		"frontend": len(plan.Frontend),
		"backend":  len(plan.Backend),
		"database": len(plan.Database),
	}

	countScore := 0
	for _, n := range counts {
		countScore += sectionScore(n)
	}

	hit := matchedKeywords(plan)
	kwScore := roundRatio(min(len(hit), keywordFullCount), keywordFullCount, keywordMaxScore)

	total := countScore + kwScore
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return total, &entity.QualityDetail{
		Counts:       counts,
		CountScore:   countScore,
		KeywordScore: kwScore,
		KeywordsHit:  hit,
	}
}

// sectionScore 按条目数计算单部分得分,6条及以上得满分
func sectionScore(count int) int {
	return roundRatio(min(count, sectionFullCount), sectionFullCount, sectionMaxScore)
}

// matchedKeywords 返回方案全文命中的关键词,每个关键词最多计一次
func matchedKeywords(plan *entity.Plan) []string {
	var sb strings.Builder
	for _, section := range [][]string{plan.Frontend, plan.Backend, plan.Database} {
		for _, item := range section {
			sb.WriteString(strings.ToLower(item))
			sb.WriteByte('\n')
		}
	}
	text := sb.String()

	hit := make([]string, 0, len(qualityKeywords))
	for _, kw := range qualityKeywords {
		if strings.Contains(text, kw) {
			hit = append(hit, kw)
		}
	}
	return hit
}

// roundRatio 按 n/full*max 四舍五入
func roundRatio(n, full, max int) int {
	return int(math.Round(float64(n) / float64(full) * float64(max)))
}
