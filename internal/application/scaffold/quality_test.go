package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmatic-api/internal/domain/entity"
)

func TestScorePlan_NilPlan(t *testing.T) {
	score, detail := ScorePlan(nil)
	assert.Zero(t, score)
	require.NotNil(t, detail)
	assert.Equal(t, "no_plan", detail.Reason)
}

func TestScorePlan_EmptyPlan(t *testing.T) {
	score, detail := ScorePlan(&entity.Plan{})
	assert.Zero(t, score)
	assert.Equal(t, "no_plan", detail.Reason)
}

func TestScorePlan_CountScore(t *testing.T) {
	// 每部分3条,无关键词: round(3/6*20)=10 每部分
	plan := &entity.Plan{
		Frontend: []string{"one", "two", "three"},
		Backend:  []string{"one", "two", "three"},
		Database: []string{"one", "two", "three"},
	}
	score, detail := ScorePlan(plan)
	assert.Equal(t, 30, score)
	assert.Equal(t, 30, detail.CountScore)
	assert.Equal(t, map[string]int{"frontend": 3, "backend": 3, "database": 3}, detail.Counts)
	assert.Empty(t, detail.KeywordsHit)
}

func TestScorePlan_SectionCapAtSix(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	plan := &entity.Plan{Frontend: items, Backend: []string{"x"}, Database: []string{"y"}}
	_, detail := ScorePlan(plan)
	// 8条封顶到满分20,另两部分各 round(1/6*20)=3
	assert.Equal(t, 8, detail.Counts["frontend"])
	assert.Equal(t, 26, detail.CountScore)
}

func TestScorePlan_KeywordsHit(t *testing.T) {
	plan := &entity.Plan{
		Frontend: []string{"login form with auth"},
		Backend:  []string{"REST api endpoint with logging"},
		Database: []string{"schema plus migration scripts"},
	}
	_, detail := ScorePlan(plan)
	assert.ElementsMatch(t,
		[]string{"auth", "api", "endpoint", "schema", "migration", "logging"},
		detail.KeywordsHit)
	// round(6/10*40) = 24
	assert.Equal(t, 24, detail.KeywordScore)
}

func TestScorePlan_KeywordMatchesOncePerKeyword(t *testing.T) {
	plan := &entity.Plan{
		Backend: []string{"api api api", "api again"},
	}
	_, detail := ScorePlan(plan)
	assert.Equal(t, []string{"api"}, detail.KeywordsHit)
}

func TestScorePlan_MaxScore(t *testing.T) {
	full := []string{
		"auth and authentication with authorization",
		"api endpoint design",
		"database schema migration",
		"testing with tests jest pytest",
		"deployment deploy pipeline",
		"error logging monitor security performance",
	}
	plan := &entity.Plan{Frontend: full, Backend: full, Database: full}
	score, detail := ScorePlan(plan)
	assert.Equal(t, 100, score)
	assert.Equal(t, 40, detail.KeywordScore)
	assert.Equal(t, 60, detail.CountScore)
}
