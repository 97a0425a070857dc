package scaffold

import (
	"context"
	"encoding/json"
	"strings"
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

// Generator 代码产物生成器
type Generator struct {
	chain   *chain.ArtifactChain
	factory port.ChatModelFactory
	timeout time.Duration
}

// NewGenerator 创建生成器
func NewGenerator(artifactChain *chain.ArtifactChain, factory port.ChatModelFactory, timeout time.Duration) *Generator {
	return &Generator{
		chain:   artifactChain,
		factory: factory,
		timeout: timeout,
	}
}

// artifactEnvelope 模型输出的产物信封结构
type artifactEnvelope struct {
	Files []struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	} `json:"files"`
	HTMLPreview string `json:"html_preview"`
}

// Generate 生成代码产物
func (g *Generator) Generate(ctx context.Context, provider, modelOverride, description, chatContext string, plan *entity.Plan) (*entity.Artifact, *wfmodel.LLMUsageMeta, error) {
	ctx, span := tracer.Tracer("scaffold").Start(ctx, "scaffold.generate")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	meta := g.usageMeta(provider, modelOverride)

	var planJSON string
	if !plan.IsEmpty() {
		data, err := json.Marshal(plan)
		if err != nil {
			return nil, meta, apperrors.Wrap(err, apperrors.CodeInternal, "序列化方案失败")
		}
		planJSON = string(data)
	}

	resp, err := g.chain.Invoke(ctx, &wfmodel.ArtifactGenerateInput{
		Provider:    provider,
		Model:       modelOverride,
		Description: description,
		ChatContext: chatContext,
		PlanJSON:    planJSON,
	})
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallsTotal.WithLabelValues(meta.Provider, meta.Model, "error").Inc()
		return nil, meta, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "生成模型调用失败")
	}
	metrics.LLMCallsTotal.WithLabelValues(meta.Provider, meta.Model, "success").Inc()

	var envelope artifactEnvelope
	if err := node.UnmarshalObject(resp.Content, &envelope); err != nil {
		span.RecordError(err)
		logger.Warn(ctx, "生成输出解析失败", err, "provider", meta.Provider)
		return nil, meta, apperrors.Wrap(err, apperrors.CodeParseFailed, "生成输出解析失败")
	}

	artifact := normalizeArtifact(&envelope)
	if artifact == nil {
		err := apperrors.New(apperrors.CodeParseFailed, "生成输出为空产物")
		span.RecordError(err)
		return nil, meta, err
	}

	return artifact, meta, nil
}

// normalizeArtifact 规整产物:丢弃路径或内容为空的文件,
// 文件与预览均为空时视为无效产物
func normalizeArtifact(envelope *artifactEnvelope) *entity.Artifact {
	artifact := &entity.Artifact{
		HTMLPreview: strings.TrimSpace(envelope.HTMLPreview),
	}
	for _, f := range envelope.Files {
		path := strings.TrimSpace(f.Path)
		if path == "" || f.Content == "" {
			continue
		}
		artifact.Files = append(artifact.Files, entity.ArtifactFile{
			Path:    path,
			Content: f.Content,
		})
	}

	if len(artifact.Files) == 0 && artifact.HTMLPreview == "" {
		return nil
	}

	// 预览缺失时,用首个HTML文件兜底
	if artifact.HTMLPreview == "" {
		for _, f := range artifact.Files {
			if strings.HasSuffix(f.Path, ".html") {
				artifact.HTMLPreview = f.Content
				break
			}
		}
	}

	return artifact
}

func (g *Generator) usageMeta(provider, modelOverride string) *wfmodel.LLMUsageMeta {
	actualProvider := provider
	if actualProvider == "" {
		actualProvider = g.factory.DefaultProvider()
	}
	model := modelOverride
	if model == "" {
		model = g.factory.ModelName(provider)
	}
	return &wfmodel.LLMUsageMeta{
		Provider:    actualProvider,
		Model:       model,
		GeneratedAt: time.Now(),
	}
}
