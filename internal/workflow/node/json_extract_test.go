package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject_Plain(t *testing.T) {
	raw, err := ExtractJSONObject(`{"frontend": ["a"], "backend": []}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"frontend": ["a"], "backend": []}`, raw)
}

func TestExtractJSONObject_Fenced(t *testing.T) {
	text := "Here is the plan:\n```json\n{\"frontend\": [\"a\"]}\n```\nDone."
	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"frontend": ["a"]}`, raw)
}

func TestExtractJSONObject_FencedNoLanguage(t *testing.T) {
	text := "```\n{\"backend\": [\"api\"]}\n```"
	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"backend": ["api"]}`, raw)
}

func TestExtractJSONObject_UnterminatedFence(t *testing.T) {
	text := "```json\n{\"frontend\": [\"a\"], \"backend\": [\"b\"]}"
	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"frontend": ["a"], "backend": ["b"]}`, raw)
}

func TestExtractJSONObject_ProseWrapped(t *testing.T) {
	text := `Sure! The result is {"database": ["tables"]} and that is all.`
	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"database": ["tables"]}`, raw)
}

func TestExtractJSONObject_NestedBracesInStrings(t *testing.T) {
	text := "```json\n{\"note\": \"uses {curly} braces\", \"n\": 1}\n```"
	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "uses {curly} braces", got["note"])
}

func TestExtractJSONObject_TruncatedRepair(t *testing.T) {
	// 模拟输出在数组中途被截断
	text := "{\n\"frontend\": [\"a\", \"b\"],\n\"backend\": [\"c\"]\n,\"database\": [\"d\", \"e"
	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Contains(t, got, "frontend")
	assert.Contains(t, got, "backend")
}

func TestExtractJSONObject_NoJSON(t *testing.T) {
	_, err := ExtractJSONObject("no structured data here at all")
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_Empty(t *testing.T) {
	_, err := ExtractJSONObject("   \n\t  ")
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_UnparseableCandidates(t *testing.T) {
	_, err := ExtractJSONObject("{this is not json}")
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractJSONObject_ErrorIncludesSnippet(t *testing.T) {
	_, err := ExtractJSONObject("{broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{broken")
}

func TestUnmarshalObject(t *testing.T) {
	var dest struct {
		Frontend []string `json:"frontend"`
	}
	err := UnmarshalObject("```json\n{\"frontend\": [\"x\"]}\n```", &dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, dest.Frontend)
}

func TestTruncateByRunes(t *testing.T) {
	assert.Equal(t, "hello", TruncateByRunes("hello", 10))
	assert.Equal(t, "he", TruncateByRunes("hello", 2))
	assert.Equal(t, "héllo", TruncateByRunes("  héllo  ", 10))
	assert.Equal(t, "hé", TruncateByRunes("héllo", 2))
}

func TestJoinChatContext(t *testing.T) {
	assert.Empty(t, JoinChatContext(nil))

	out := JoinChatContext([]ChatTurn{
		{Role: "user", Content: "build a CRM"},
		{Role: "assistant", Content: "sure"},
	})
	assert.Equal(t, "user: build a CRM\nassistant: sure", out)
}
