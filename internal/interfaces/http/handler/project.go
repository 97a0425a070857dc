package handler

import (
	"github.com/gin-gonic/gin"

	projectapp "webmatic-api/internal/application/project"
	"webmatic-api/internal/interfaces/http/dto"
	"webmatic-api/internal/interfaces/http/middleware"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	svc *projectapp.Service
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(svc *projectapp.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create 创建项目
// POST /v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	project, err := h.svc.Create(ctx, middleware.CurrentUserID(c), req.Name, req.Description)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Created(c, project)
}

// Get 查询项目详情
// GET /v1/projects/:pid
func (h *ProjectHandler) Get(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	project, err := h.svc.Get(c.Request.Context(), pid)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, project)
}

// List 分页查询项目
// GET /v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	page := dto.BindPage(c)

	result, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), page)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.SuccessPaged(c, result.Items, &dto.Meta{
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
	})
}

// Update 更新项目
// PUT /v1/projects/:pid
func (h *ProjectHandler) Update(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	project, err := h.svc.Update(c.Request.Context(), pid, req.Name, req.Description)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, project)
}

// Delete 删除项目
// DELETE /v1/projects/:pid
func (h *ProjectHandler) Delete(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), pid); err != nil {
		dto.Error(c, err)
		return
	}

	dto.NoContent(c)
}

// ListChat 查询项目会话消息
// GET /v1/projects/:pid/chat
func (h *ProjectHandler) ListChat(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	msgs, err := h.svc.ListChat(c.Request.Context(), pid)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Success(c, msgs)
}

// AppendChat 追加会话消息
// POST /v1/projects/:pid/chat
func (h *ProjectHandler) AppendChat(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	var req dto.AppendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	msg, err := h.svc.AppendChat(c.Request.Context(), pid, req.Content)
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.Created(c, msg)
}

// ListRuns 分页查询项目运行记录
// GET /v1/projects/:pid/runs
func (h *ProjectHandler) ListRuns(c *gin.Context) {
	pid, ok := dto.BindProjectID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListRuns(c.Request.Context(), pid, dto.BindPage(c))
	if err != nil {
		dto.Error(c, err)
		return
	}

	dto.SuccessPaged(c, result.Items, &dto.Meta{
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
	})
}
