package chain

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	wfmodel "webmatic-api/internal/workflow/model"
	"webmatic-api/internal/workflow/port"
	"webmatic-api/internal/workflow/prompt"
)

// artifactState 生成链节点间传递的状态
type artifactState struct {
	input    *wfmodel.ArtifactGenerateInput
	messages []*schema.Message
}

// ArtifactChain 代码产物生成链
type ArtifactChain struct {
	factory     port.ChatModelFactory
	prompts     *prompt.Registry
	temperature float32
	maxTokens   int

	once       sync.Once
	runnable   compose.Runnable[*wfmodel.ArtifactGenerateInput, *schema.Message]
	compileErr error
}

// NewArtifactChain 创建生成链
func NewArtifactChain(factory port.ChatModelFactory, prompts *prompt.Registry, temperature float32, maxTokens int) *ArtifactChain {
	return &ArtifactChain{
		factory:     factory,
		prompts:     prompts,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Invoke 执行生成链,返回模型原始回复
func (c *ArtifactChain) Invoke(ctx context.Context, input *wfmodel.ArtifactGenerateInput) (*schema.Message, error) {
	c.once.Do(func() {
		c.runnable, c.compileErr = c.compile(ctx)
	})
	if c.compileErr != nil {
		return nil, fmt.Errorf("编译生成链失败: %w", c.compileErr)
	}
	return c.runnable.Invoke(ctx, input)
}

// compile 编译生成链
func (c *ArtifactChain) compile(ctx context.Context) (compose.Runnable[*wfmodel.ArtifactGenerateInput, *schema.Message], error) {
	ch := compose.NewChain[*wfmodel.ArtifactGenerateInput, *schema.Message]()

	ch.AppendLambda(compose.InvokableLambda(
		func(ctx context.Context, input *wfmodel.ArtifactGenerateInput) (*artifactState, error) {
			tpl, err := c.prompts.Get(prompt.CodeGenV1)
			if err != nil {
				return nil, err
			}
			msgs, err := tpl.Format(ctx, map[string]any{
				"description":  input.Description,
				"plan_json":    orPlaceholder(input.PlanJSON),
				"chat_context": orPlaceholder(input.ChatContext),
			})
			if err != nil {
				return nil, fmt.Errorf("渲染生成提示词失败: %w", err)
			}
			return &artifactState{input: input, messages: msgs}, nil
		}))

	ch.AppendLambda(compose.InvokableLambda(
		func(ctx context.Context, state *artifactState) (*schema.Message, error) {
			cm, err := c.factory.Get(ctx, state.input.Provider)
			if err != nil {
				return nil, err
			}
			opts := buildModelOptions(c.temperature, c.maxTokens, state.input.Model)
			resp, err := cm.Generate(ctx, state.messages, opts...)
			if err != nil {
				return nil, fmt.Errorf("生成模型调用失败: %w", err)
			}
			return resp, nil
		}))

	return ch.Compile(ctx)
}
