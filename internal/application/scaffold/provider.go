// Package scaffold 实现项目脚手架的规划、生成与对比流程
package scaffold

import (
	"sort"
	"strings"

	apperrors "webmatic-api/pkg/errors"
)

// 对外暴露的逻辑提供方键
const (
	ProviderAuto   = "auto"
	ProviderClaude = "claude"
	ProviderGPT    = "gpt"
)

// allowedModels 允许的模型覆盖白名单
var allowedModels = map[string]struct{}{
	"claude-4-sonnet": {},
	"gpt-5":           {},
}

// providerMap 逻辑键到提供方配置键的映射
var providerMap = map[string]string{
	ProviderAuto:   "",
	ProviderClaude: "anthropic",
	ProviderGPT:    "openai",
}

// providerDefaultModel 逻辑键对应的默认模型,auto不强制模型
var providerDefaultModel = map[string]string{
	ProviderAuto:   "",
	ProviderClaude: "claude-4-sonnet",
	ProviderGPT:    "gpt-5",
}

// AllowedModels 允许的模型列表,按字典序返回
func AllowedModels() []string {
	models := make([]string, 0, len(allowedModels))
	for m := range allowedModels {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

// ResolveProviderModel 解析请求的提供方与模型。
// provider为逻辑键(auto/claude/gpt),空值或未知键均回落到auto;
// model覆盖必须在白名单内,否则返回参数错误。
func ResolveProviderModel(provider, model string) (resolvedProvider, resolvedModel string, err error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	mapped, ok := providerMap[provider]
	if !ok {
		provider = ProviderAuto
		mapped = providerMap[ProviderAuto]
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = providerDefaultModel[provider]
	} else if _, ok := allowedModels[model]; !ok {
		return "", "", apperrors.ErrUnsupportedModel.WithDetail(
			"允许的模型: " + strings.Join(AllowedModels(), ", "))
	}

	return mapped, model, nil
}
