package scaffold

import (
	"context"
	"time"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/workflow/chain"
	wfmodel "webmatic-api/internal/workflow/model"
	"webmatic-api/internal/workflow/node"
	"webmatic-api/internal/workflow/port"
	apperrors "webmatic-api/pkg/errors"
	"webmatic-api/pkg/logger"
	"webmatic-api/pkg/metrics"
	"webmatic-api/pkg/tracer"
)

// Planner 实施方案规划器,调用模型并将输出规整为方案
type Planner struct {
	chain   *chain.PlanChain
	factory port.ChatModelFactory
	timeout time.Duration
}

// NewPlanner 创建规划器
func NewPlanner(planChain *chain.PlanChain, factory port.ChatModelFactory, timeout time.Duration) *Planner {
	return &Planner{
		chain:   planChain,
		factory: factory,
		timeout: timeout,
	}
}

// Plan 生成实施方案。provider为已解析的提供方配置键,
// modelOverride为已校验的模型覆盖,均可为空。
func (p *Planner) Plan(ctx context.Context, provider, modelOverride, description, chatContext string) (*entity.Plan, *wfmodel.LLMUsageMeta, error) {
	ctx, span := tracer.Tracer("scaffold").Start(ctx, "scaffold.plan")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	meta := p.usageMeta(provider, modelOverride)

	resp, err := p.chain.Invoke(ctx, &wfmodel.PlanGenerateInput{
		Provider:    provider,
		Model:       modelOverride,
		Description: description,
		ChatContext: chatContext,
	})
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallsTotal.WithLabelValues(meta.Provider, meta.Model, "error").Inc()
		return nil, meta, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "规划模型调用失败")
	}
	metrics.LLMCallsTotal.WithLabelValues(meta.Provider, meta.Model, "success").Inc()

	var raw map[string]any
	if err := node.UnmarshalObject(resp.Content, &raw); err != nil {
		span.RecordError(err)
		logger.Warn(ctx, "规划输出解析失败", err, "provider", meta.Provider)
		return nil, meta, apperrors.Wrap(err, apperrors.CodeParseFailed, "规划输出解析失败")
	}

	return NormalizePlan(raw), meta, nil
}

// usageMeta 构造调用元信息,auto提供方回落到工厂默认值
func (p *Planner) usageMeta(provider, modelOverride string) *wfmodel.LLMUsageMeta {
	actualProvider := provider
	if actualProvider == "" {
		actualProvider = p.factory.DefaultProvider()
	}
	model := modelOverride
	if model == "" {
		model = p.factory.ModelName(provider)
	}
	return &wfmodel.LLMUsageMeta{
		Provider:    actualProvider,
		Model:       model,
		GeneratedAt: time.Now(),
	}
}
