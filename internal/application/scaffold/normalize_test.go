package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePlan_CleanLists(t *testing.T) {
	plan := NormalizePlan(map[string]any{
		"frontend": []any{"  shell  ", "form"},
		"backend":  []any{"api"},
		"database": []any{"tables"},
	})
	require.NotNil(t, plan)
	assert.Equal(t, []string{"shell", "form"}, plan.Frontend)
	assert.Equal(t, []string{"api"}, plan.Backend)
	assert.Equal(t, []string{"tables"}, plan.Database)
}

func TestNormalizePlan_StringifiesNonStringElements(t *testing.T) {
	plan := NormalizePlan(map[string]any{
		"frontend": []any{"a", "", "   ", nil},
		"backend":  []any{42, true},
		"database": []any{map[string]any{"x": 1}, []any{"y"}},
	})
	require.NotNil(t, plan)
	assert.Equal(t, []string{"a"}, plan.Frontend)
	assert.Equal(t, []string{"42", "true"}, plan.Backend)
	// 复合结构序列化为JSON文本而不是丢弃
	assert.Equal(t, []string{`{"x":1}`, `["y"]`}, plan.Database)
}

func TestNormalizePlan_SingleStringSection(t *testing.T) {
	plan := NormalizePlan(map[string]any{
		"frontend": "just one item",
	})
	require.NotNil(t, plan)
	assert.Equal(t, []string{"just one item"}, plan.Frontend)
	assert.Empty(t, plan.Backend)
	assert.Empty(t, plan.Database)
}

func TestNormalizePlan_MissingKeysYieldEmptyLists(t *testing.T) {
	for _, raw := range []map[string]any{
		nil,
		{},
		{"frontend": []any{}, "backend": "   ", "database": nil},
	} {
		plan := NormalizePlan(raw)
		require.NotNil(t, plan)
		assert.NotNil(t, plan.Frontend)
		assert.NotNil(t, plan.Backend)
		assert.NotNil(t, plan.Database)
		assert.Empty(t, plan.Frontend)
		assert.Empty(t, plan.Backend)
		assert.Empty(t, plan.Database)
		assert.True(t, plan.IsEmpty())
	}
}

func TestNormalizePlan_IgnoresUnknownKeys(t *testing.T) {
	plan := NormalizePlan(map[string]any{
		"frontend": []any{"a"},
		"devops":   []any{"should be ignored"},
	})
	require.NotNil(t, plan)
	assert.Equal(t, []string{"a"}, plan.Frontend)
}
