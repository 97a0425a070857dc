// Package handler 实现HTTP处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"webmatic-api/internal/application/auth"
	"webmatic-api/internal/interfaces/http/dto"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 注册用户
// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, tokens, err := h.svc.Register(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Created(c, &dto.AuthResponse{User: user, Tokens: tokens})
}

// Login 登录
// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, tokens, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, &dto.AuthResponse{User: user, Tokens: tokens})
}

// Refresh 刷新令牌
// POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, tokens)
}
