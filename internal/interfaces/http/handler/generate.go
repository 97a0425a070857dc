package handler

import (
	"github.com/gin-gonic/gin"

	"webmatic-api/internal/application/scaffold"
	"webmatic-api/internal/interfaces/http/dto"
)

// GenerateHandler 规划生成处理器
type GenerateHandler struct {
	svc *scaffold.Service
}

// NewGenerateHandler 创建规划生成处理器
func NewGenerateHandler(svc *scaffold.Service) *GenerateHandler {
	return &GenerateHandler{svc: svc}
}

// Scaffold 生成实施方案
// POST /v1/projects/:pid/scaffold
func (h *GenerateHandler) Scaffold(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		dto.BadRequest(c, err.Error())
		return
	}

	project, run, err := h.svc.ScaffoldProject(c.Request.Context(), pid, scaffold.Options{
		Provider: req.Provider,
		Model:    req.Model,
	})
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, &dto.GenerateResponse{Project: project, Run: run})
}

// Generate 生成代码产物
// POST /v1/projects/:pid/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		dto.BadRequest(c, err.Error())
		return
	}

	project, run, err := h.svc.GenerateArtifact(c.Request.Context(), pid, scaffold.Options{
		Provider: req.Provider,
		Model:    req.Model,
	})
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, &dto.GenerateResponse{Project: project, Run: run})
}

// Compare 多模型方案对比
// POST /v1/projects/:pid/compare
func (h *GenerateHandler) Compare(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		dto.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.ComparePlans(c.Request.Context(), pid, req.Candidates)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, result)
}
