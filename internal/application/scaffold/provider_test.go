package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "webmatic-api/pkg/errors"
)

func TestResolveProviderModel_Auto(t *testing.T) {
	provider, model, err := ResolveProviderModel("", "")
	require.NoError(t, err)
	assert.Empty(t, provider)
	assert.Empty(t, model)

	provider, model, err = ResolveProviderModel("auto", "")
	require.NoError(t, err)
	assert.Empty(t, provider)
	assert.Empty(t, model)
}

func TestResolveProviderModel_LogicalKeys(t *testing.T) {
	provider, model, err := ResolveProviderModel("claude", "")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", provider)
	assert.Equal(t, "claude-4-sonnet", model)

	provider, model, err = ResolveProviderModel("gpt", "")
	require.NoError(t, err)
	assert.Equal(t, "openai", provider)
	assert.Equal(t, "gpt-5", model)
}

func TestResolveProviderModel_OverrideAllowed(t *testing.T) {
	provider, model, err := ResolveProviderModel("claude", "claude-4-sonnet")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", provider)
	assert.Equal(t, "claude-4-sonnet", model)
}

func TestResolveProviderModel_UnsupportedModel(t *testing.T) {
	_, _, err := ResolveProviderModel("gpt", "gpt-3.5-turbo")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnsupportedModel, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Contains(t, appErr.Detail, "claude-4-sonnet")
	assert.Contains(t, appErr.Detail, "gpt-5")
}

func TestResolveProviderModel_UnknownProviderFallsBackToAuto(t *testing.T) {
	provider, model, err := ResolveProviderModel("gemini", "")
	require.NoError(t, err)
	assert.Empty(t, provider)
	assert.Empty(t, model)

	// 未知键不影响白名单内的模型覆盖
	provider, model, err = ResolveProviderModel("gemini", "gpt-5")
	require.NoError(t, err)
	assert.Empty(t, provider)
	assert.Equal(t, "gpt-5", model)
}

func TestAllowedModels_Sorted(t *testing.T) {
	assert.Equal(t, []string{"claude-4-sonnet", "gpt-5"}, AllowedModels())
}
