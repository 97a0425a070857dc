package handler

import (
	"github.com/gin-gonic/gin"

	"webmatic-api/internal/application/scaffold"
	templateapp "webmatic-api/internal/application/template"
	"webmatic-api/internal/interfaces/http/dto"
	"webmatic-api/internal/interfaces/http/middleware"
)

// TemplateHandler 模板处理器
type TemplateHandler struct {
	svc *templateapp.Service
}

// NewTemplateHandler 创建模板处理器
func NewTemplateHandler(svc *templateapp.Service) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// List 查询模板列表
// GET /v1/templates
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.svc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, templates)
}

// Get 查询模板详情
// GET /v1/templates/:tid
func (h *TemplateHandler) Get(c *gin.Context) {
	tid := c.Param("tid")
	if tid == "" {
		dto.BadRequest(c, "缺少模板ID")
		return
	}

	tpl, err := h.svc.Get(c.Request.Context(), tid)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, tpl)
}

// FromTemplate 基于模板创建项目并立即规划
// POST /v1/projects/from-template
func (h *TemplateHandler) FromTemplate(c *gin.Context) {
	var req dto.FromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	project, run, err := h.svc.CreateFromTemplate(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		req.TemplateID,
		req.Name,
		scaffold.Options{Provider: req.Provider, Model: req.Model},
	)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Created(c, &dto.GenerateResponse{Project: project, Run: run})
}
