package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmatic-api/internal/domain/entity"
)

func TestDiffPlans_ThreeSets(t *testing.T) {
	base := &entity.Plan{
		Frontend: []string{"shell", "form"},
		Backend:  []string{"api"},
		Database: []string{"tables"},
	}
	other := &entity.Plan{
		Frontend: []string{"form", "dashboard"},
		Backend:  []string{"api"},
		Database: []string{},
	}

	diff := DiffPlans(base, other)
	assert.Equal(t, []string{"shell"}, diff.Frontend.OnlyInBaseline)
	assert.Equal(t, []string{"dashboard"}, diff.Frontend.OnlyInVariant)
	assert.Equal(t, []string{"form"}, diff.Frontend.Overlap)

	assert.Empty(t, diff.Backend.OnlyInBaseline)
	assert.Empty(t, diff.Backend.OnlyInVariant)
	assert.Equal(t, []string{"api"}, diff.Backend.Overlap)

	assert.Equal(t, []string{"tables"}, diff.Database.OnlyInBaseline)
	assert.Empty(t, diff.Database.Overlap)
}

func TestDiffPlans_Identical(t *testing.T) {
	plan := &entity.Plan{
		Frontend: []string{"a"},
		Backend:  []string{"b"},
		Database: []string{"c"},
	}
	diff := DiffPlans(plan, plan)
	assert.True(t, diff.IsEmpty())
	assert.Equal(t, []string{"a"}, diff.Frontend.Overlap)
}

func TestDiffPlans_NilOther(t *testing.T) {
	base := &entity.Plan{Backend: []string{"api"}}
	diff := DiffPlans(base, nil)
	assert.Equal(t, []string{"api"}, diff.Backend.OnlyInBaseline)
	assert.False(t, diff.IsEmpty())
}

func TestDiffStringSets_OverlapIsIntersection(t *testing.T) {
	diff := diffStringSets([]string{"x", "y"}, []string{"y", "z"})
	assert.Equal(t, []string{"x"}, diff.OnlyInBaseline)
	assert.Equal(t, []string{"z"}, diff.OnlyInVariant)
	assert.Equal(t, []string{"y"}, diff.Overlap)
}

func TestDiffStringSets_SortedAndDeduped(t *testing.T) {
	diff := diffStringSets(
		[]string{"b", "a", "a", "  c  "},
		[]string{"c", "d", "z", "d"},
	)
	assert.Equal(t, []string{"a", "b"}, diff.OnlyInBaseline)
	assert.Equal(t, []string{"d", "z"}, diff.OnlyInVariant)
	assert.Equal(t, []string{"c"}, diff.Overlap)
}

func TestNormalizeStringSet(t *testing.T) {
	out := normalizeStringSet([]string{" b ", "a", "b", "", "  "})
	require.Equal(t, []string{"a", "b"}, out)
}

func TestDefaultCompareCandidates(t *testing.T) {
	cands := DefaultCompareCandidates()
	require.Len(t, cands, 2)
	assert.Equal(t, CompareCandidate{Provider: "claude", Model: "claude-4-sonnet"}, cands[0])
	assert.Equal(t, CompareCandidate{Provider: "gpt", Model: "gpt-5"}, cands[1])
}
