// Package chain 提供基于eino编排的生成链
package chain

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	wfmodel "webmatic-api/internal/workflow/model"
	"webmatic-api/internal/workflow/port"
	"webmatic-api/internal/workflow/prompt"
)

// planState 规划链节点间传递的状态
type planState struct {
	input    *wfmodel.PlanGenerateInput
	messages []*schema.Message
}

// PlanChain 实施方案规划链
type PlanChain struct {
	factory     port.ChatModelFactory
	prompts     *prompt.Registry
	temperature float32
	maxTokens   int

	once       sync.Once
	runnable   compose.Runnable[*wfmodel.PlanGenerateInput, *schema.Message]
	compileErr error
}

// NewPlanChain 创建规划链
func NewPlanChain(factory port.ChatModelFactory, prompts *prompt.Registry, temperature float32, maxTokens int) *PlanChain {
	return &PlanChain{
		factory:     factory,
		prompts:     prompts,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Invoke 执行规划链,返回模型原始回复
func (c *PlanChain) Invoke(ctx context.Context, input *wfmodel.PlanGenerateInput) (*schema.Message, error) {
	c.once.Do(func() {
		c.runnable, c.compileErr = c.compile(ctx)
	})
	if c.compileErr != nil {
		return nil, fmt.Errorf("编译规划链失败: %w", c.compileErr)
	}
	return c.runnable.Invoke(ctx, input)
}

// compile 编译规划链
func (c *PlanChain) compile(ctx context.Context) (compose.Runnable[*wfmodel.PlanGenerateInput, *schema.Message], error) {
	ch := compose.NewChain[*wfmodel.PlanGenerateInput, *schema.Message]()

	// 渲染提示词
	ch.AppendLambda(compose.InvokableLambda(
		func(ctx context.Context, input *wfmodel.PlanGenerateInput) (*planState, error) {
			tpl, err := c.prompts.Get(prompt.ScaffoldPlanV1)
			if err != nil {
				return nil, err
			}
			msgs, err := tpl.Format(ctx, map[string]any{
				"description":  input.Description,
				"chat_context": orPlaceholder(input.ChatContext),
			})
			if err != nil {
				return nil, fmt.Errorf("渲染规划提示词失败: %w", err)
			}
			return &planState{input: input, messages: msgs}, nil
		}))

	// 调用模型
	ch.AppendLambda(compose.InvokableLambda(
		func(ctx context.Context, state *planState) (*schema.Message, error) {
			cm, err := c.factory.Get(ctx, state.input.Provider)
			if err != nil {
				return nil, err
			}
			opts := buildModelOptions(c.temperature, c.maxTokens, state.input.Model)
			resp, err := cm.Generate(ctx, state.messages, opts...)
			if err != nil {
				return nil, fmt.Errorf("规划模型调用失败: %w", err)
			}
			return resp, nil
		}))

	return ch.Compile(ctx)
}

// buildModelOptions 构造模型调用参数,modelOverride为空时使用提供方默认模型
func buildModelOptions(temperature float32, maxTokens int, modelOverride string) []model.Option {
	opts := []model.Option{
		model.WithTemperature(temperature),
		model.WithMaxTokens(maxTokens),
	}
	if modelOverride != "" {
		opts = append(opts, model.WithModel(modelOverride))
	}
	return opts
}

// orPlaceholder 空上下文使用占位文本,避免模板渲染出空段落
func orPlaceholder(s string) string {
	if s == "" {
		return "(no prior conversation)"
	}
	return s
}
