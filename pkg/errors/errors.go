// Package errors 提供统一的应用错误类型
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

const (
	// CodeInvalidParam 参数无效
	CodeInvalidParam ErrorCode = "INVALID_PARAM"
	// CodeUnauthorized 未认证
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// CodeForbidden 无权限
	CodeForbidden ErrorCode = "FORBIDDEN"
	// CodeNotFound 资源不存在
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeConflict 资源冲突
	CodeConflict ErrorCode = "CONFLICT"
	// CodeRateLimited 请求频率超限
	CodeRateLimited ErrorCode = "RATE_LIMITED"
	// CodeInternal 内部错误
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeProjectNotFound 项目不存在
	CodeProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"
	// CodeTemplateNotFound 模板不存在
	CodeTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	// CodeUserNotFound 用户不存在
	CodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	// CodeUserExists 用户已存在
	CodeUserExists ErrorCode = "USER_EXISTS"
	// CodeUnsupportedModel 模型不在允许列表内
	CodeUnsupportedModel ErrorCode = "UNSUPPORTED_MODEL"
	// CodeLLMCallFailed 模型调用失败
	CodeLLMCallFailed ErrorCode = "LLM_CALL_FAILED"
	// CodeGenerationFailed 生成流程失败
	CodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	// CodeParseFailed 模型输出解析失败
	CodeParseFailed ErrorCode = "PARSE_FAILED"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is/As链式判断
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 附加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithError 附加底层错误
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// New 创建应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装底层错误为应用错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码到HTTP状态码的映射
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidParam, CodeUnsupportedModel:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeProjectNotFound, CodeTemplateNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeUserExists:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError 提取应用错误
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// 预定义错误
var (
	ErrInvalidParam     = New(CodeInvalidParam, "参数无效")
	ErrUnauthorized     = New(CodeUnauthorized, "未认证或令牌无效")
	ErrForbidden        = New(CodeForbidden, "无权访问该资源")
	ErrProjectNotFound  = New(CodeProjectNotFound, "项目不存在")
	ErrTemplateNotFound = New(CodeTemplateNotFound, "模板不存在")
	ErrUserNotFound     = New(CodeUserNotFound, "用户不存在")
	ErrUserExists       = New(CodeUserExists, "用户已存在")
	ErrUnsupportedModel = New(CodeUnsupportedModel, "模型不在允许列表内")
	ErrRateLimited      = New(CodeRateLimited, "请求过于频繁,请稍后重试")
	ErrInternal         = New(CodeInternal, "服务内部错误")
)
