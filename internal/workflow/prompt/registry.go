// Package prompt 提供嵌入式提示词模板注册表
package prompt

import (
	"embed"
	"fmt"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templateFS embed.FS

// ID 提示词模板标识
type ID string

const (
	// ScaffoldPlanV1 实施方案规划提示词
	ScaffoldPlanV1 ID = "scaffold_plan_v1"
	// CodeGenV1 代码产物生成提示词
	CodeGenV1 ID = "code_gen_v1"
)

// Registry 提示词注册表,模板懒加载并缓存
type Registry struct {
	cache map[ID]einoprompt.ChatTemplate
	mu    sync.RWMutex
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[ID]einoprompt.ChatTemplate),
	}
}

// Get 获取指定模板
func (r *Registry) Get(id ID) (einoprompt.ChatTemplate, error) {
	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	system, err := templateFS.ReadFile(fmt.Sprintf("templates/%s.system.txt", id))
	if err != nil {
		return nil, fmt.Errorf("读取系统提示词失败 id=%s: %w", id, err)
	}
	user, err := templateFS.ReadFile(fmt.Sprintf("templates/%s.user.txt", id))
	if err != nil {
		return nil, fmt.Errorf("读取用户提示词失败 id=%s: %w", id, err)
	}

	tpl := einoprompt.FromMessages(schema.FString,
		schema.SystemMessage(string(system)),
		schema.UserMessage(string(user)),
	)

	r.cache[id] = tpl
	return tpl, nil
}
