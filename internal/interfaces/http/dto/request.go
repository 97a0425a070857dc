package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"webmatic-api/internal/domain/repository"
)

// BindPage 解析分页查询参数
func BindPage(c *gin.Context) repository.Pagination {
	return repository.Pagination{
		Page:     parseIntWithDefault(c.Query("page"), 1),
		PageSize: parseIntWithDefault(c.Query("page_size"), 20),
	}
}

// BindProjectID 解析路径中的项目ID
func BindProjectID(c *gin.Context) (string, bool) {
	id := c.Param("pid")
	if id == "" {
		BadRequest(c, "缺少项目ID")
		return "", false
	}
	return id, true
}

func parseIntWithDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
