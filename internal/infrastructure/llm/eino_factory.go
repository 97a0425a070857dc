// Package llm 提供基于eino的聊天模型工厂
package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"webmatic-api/internal/config"
)

// EinoFactory eino聊天模型工厂,按提供方懒加载并缓存模型实例
type EinoFactory struct {
	cfg    *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建模型工厂
func NewEinoFactory(cfg *config.LLMConfig) *EinoFactory {
	return &EinoFactory{
		cfg:    cfg,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定提供方的聊天模型
func (f *EinoFactory) Get(ctx context.Context, provider string) (model.BaseChatModel, error) {
	if provider == "" {
		provider = f.cfg.Default
	}

	f.mu.RLock()
	if m, ok := f.models[provider]; ok {
		f.mu.RUnlock()
		return m, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// 双重检查,避免并发重复创建
	if m, ok := f.models[provider]; ok {
		return m, nil
	}

	pc, ok := f.cfg.Providers[provider]
	if !ok {
		return nil, fmt.Errorf("未配置的模型提供方: %s", provider)
	}

	timeout := f.cfg.Timeout
	m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  pc.APIKey,
		BaseURL: pc.BaseURL,
		Model:   pc.Model,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("创建聊天模型失败 provider=%s: %w", provider, err)
	}

	f.models[provider] = m
	return m, nil
}

// DefaultProvider 默认提供方键
func (f *EinoFactory) DefaultProvider() string {
	return f.cfg.Default
}

// ModelName 提供方配置的默认模型名
func (f *EinoFactory) ModelName(provider string) string {
	if provider == "" {
		provider = f.cfg.Default
	}
	if pc, ok := f.cfg.Providers[provider]; ok {
		return pc.Model
	}
	return ""
}
