// Package dto 定义HTTP请求响应结构
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	apperrors "webmatic-api/pkg/errors"
)

// Response 统一响应信封
type Response[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// Meta 分页元信息
type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	ErrorCode string `json:"error_code"`
	Details   string `json:"details,omitempty"`
}

// traceID 从请求上下文提取追踪ID
func traceID(c *gin.Context) string {
	span := trace.SpanFromContext(c.Request.Context())
	if span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// Success 200响应
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Code:    "OK",
		Message: "success",
		Data:    data,
		TraceID: traceID(c),
	})
}

// SuccessPaged 200分页响应
func SuccessPaged[T any](c *gin.Context, data T, meta *Meta) {
	c.JSON(http.StatusOK, Response[T]{
		Code:    "OK",
		Message: "success",
		Data:    data,
		Meta:    meta,
		TraceID: traceID(c),
	})
}

// Created 201响应
func Created[T any](c *gin.Context, data T) {
	c.JSON(http.StatusCreated, Response[T]{
		Code:    "CREATED",
		Message: "created",
		Data:    data,
		TraceID: traceID(c),
	})
}

// NoContent 204响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, detail string) {
	fail(c, http.StatusBadRequest, string(apperrors.CodeInvalidParam), "参数无效", detail)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, detail string) {
	fail(c, http.StatusUnauthorized, string(apperrors.CodeUnauthorized), "未认证", detail)
}

// NotFound 404响应
func NotFound(c *gin.Context, detail string) {
	fail(c, http.StatusNotFound, string(apperrors.CodeNotFound), "资源不存在", detail)
}

// InternalError 500响应
func InternalError(c *gin.Context, detail string) {
	fail(c, http.StatusInternalServerError, string(apperrors.CodeInternal), "服务内部错误", detail)
}

// Error 按应用错误渲染响应,非应用错误按500处理
func Error(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		fail(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message, appErr.Detail)
		return
	}
	InternalError(c, "")
}

func fail(c *gin.Context, status int, code, message, detail string) {
	c.JSON(status, Response[*ErrorDetail]{
		Code:    code,
		Message: message,
		Data: &ErrorDetail{
			ErrorCode: code,
			Details:   detail,
		},
		TraceID: traceID(c),
	})
}
