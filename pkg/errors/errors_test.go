package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, New(CodeUnsupportedModel, "x").HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, New(CodeInvalidParam, "x").HTTPStatus)
	assert.Equal(t, http.StatusNotFound, New(CodeProjectNotFound, "x").HTTPStatus)
	assert.Equal(t, http.StatusNotFound, New(CodeTemplateNotFound, "x").HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, New(CodeUnauthorized, "x").HTTPStatus)
	assert.Equal(t, http.StatusConflict, New(CodeUserExists, "x").HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, New(CodeRateLimited, "x").HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, New(CodeLLMCallFailed, "x").HTTPStatus)
}

func TestWrapAndUnwrap(t *testing.T) {
	base := errors.New("connection refused")
	appErr := Wrap(base, CodeLLMCallFailed, "模型调用失败")

	assert.ErrorIs(t, appErr, base)
	assert.Contains(t, appErr.Error(), "connection refused")
	assert.Contains(t, appErr.Error(), "LLM_CALL_FAILED")
}

func TestAsAppError(t *testing.T) {
	wrapped := Wrap(ErrProjectNotFound, CodeInternal, "outer")
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInternal, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestWithDetailClones(t *testing.T) {
	detailed := ErrUnsupportedModel.WithDetail("allowed: a, b")
	assert.Equal(t, "allowed: a, b", detailed.Detail)
	assert.Empty(t, ErrUnsupportedModel.Detail)
}
