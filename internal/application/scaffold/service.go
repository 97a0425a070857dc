package scaffold

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/domain/repository"
	"webmatic-api/internal/workflow/node"
	"webmatic-api/pkg/logger"
	"webmatic-api/pkg/metrics"
	"webmatic-api/pkg/tracer"
)

// ProjectCacheInvalidator 项目缓存失效接口
type ProjectCacheInvalidator interface {
	InvalidateProject(ctx context.Context, projectID string)
}

// Options 生成选项
type Options struct {
	// Provider 逻辑提供方键: auto/claude/gpt
	Provider string
	// Model 模型覆盖,必须在白名单内
	Model string
}

// Service 脚手架编排服务。规划与生成流程对调用方永不失败:
// 模型调用或解析失败时回退到确定性桩实现,并在运行记录中留痕。
type Service struct {
	projects     repository.ProjectRepository
	chats        repository.ChatRepository
	runs         repository.RunRepository
	tx           repository.Transactor
	planner      *Planner
	generator    *Generator
	invalidator  ProjectCacheInvalidator
	historyTurns int
}

// NewService 创建编排服务,invalidator可为nil
func NewService(
	projects repository.ProjectRepository,
	chats repository.ChatRepository,
	runs repository.RunRepository,
	tx repository.Transactor,
	planner *Planner,
	generator *Generator,
	invalidator ProjectCacheInvalidator,
	historyTurns int,
) *Service {
	if historyTurns <= 0 {
		historyTurns = 10
	}
	return &Service{
		projects:     projects,
		chats:        chats,
		runs:         runs,
		tx:           tx,
		planner:      planner,
		generator:    generator,
		invalidator:  invalidator,
		historyTurns: historyTurns,
	}
}

// ScaffoldProject 为项目生成实施方案。
// 项目不存在或模型覆盖不合法时返回错误,生成失败本身不报错。
func (s *Service) ScaffoldProject(ctx context.Context, projectID string, opts Options) (*entity.Project, *entity.Run, error) {
	ctx, span := tracer.Tracer("scaffold").Start(ctx, "scaffold.service.plan")
	defer span.End()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	provider, model, err := ResolveProviderModel(opts.Provider, opts.Model)
	if err != nil {
		return nil, nil, err
	}

	chatContext, _ := s.chatContext(ctx, projectID)

	start := time.Now()
	run := entity.NewRun(projectID, entity.RunStagePlan)

	plan, meta, planErr := s.planner.Plan(ctx, provider, model, project.Description, chatContext)
	run.Provider = meta.Provider
	run.Model = meta.Model

	if planErr != nil {
		logger.Warn(ctx, "规划失败,回退到桩方案", planErr, "project_id", projectID)
		plan = StubPlan(project.Description)
		run.Mode = entity.RunModeStub
		run.Status = entity.RunStatusFallback
		run.Error = planErr.Error()
		metrics.GenerationTotal.WithLabelValues("plan", "stub", "fallback").Inc()
	} else {
		run.Mode = entity.RunModeAI
		run.Status = entity.RunStatusSuccess
		metrics.GenerationTotal.WithLabelValues("plan", "ai", "success").Inc()
	}

	score, detail := ScorePlan(plan)
	run.QualityScore = &score
	run.QualityDetail = detail
	run.PlanCounts = plan.SectionCounts()
	metrics.QualityScore.Observe(float64(score))

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		project.ApplyPlan(plan)
		if err := s.projects.Update(ctx, project); err != nil {
			return err
		}
		return s.runs.Create(ctx, run)
	})
	if err != nil {
		return nil, nil, err
	}

	s.invalidate(ctx, projectID)
	metrics.GenerationDuration.WithLabelValues("plan", run.Provider).Observe(time.Since(start).Seconds())

	return project, run, nil
}

// GenerateArtifact 为项目生成代码产物。
// 模型调用成功时追加一条助手会话消息,失败时回退到桩预览。
func (s *Service) GenerateArtifact(ctx context.Context, projectID string, opts Options) (*entity.Project, *entity.Run, error) {
	ctx, span := tracer.Tracer("scaffold").Start(ctx, "scaffold.service.generate")
	defer span.End()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	provider, model, err := ResolveProviderModel(opts.Provider, opts.Model)
	if err != nil {
		return nil, nil, err
	}

	chatContext, lastUserMessage := s.chatContext(ctx, projectID)

	start := time.Now()
	run := entity.NewRun(projectID, entity.RunStageGenerate)

	artifact, meta, genErr := s.generator.Generate(ctx, provider, model, project.Description, chatContext, project.Plan)
	run.Provider = meta.Provider
	run.Model = meta.Model

	var assistantNote string
	if genErr != nil {
		logger.Warn(ctx, "生成失败,回退到桩产物", genErr, "project_id", projectID)
		artifact = StubArtifact(project.Description, lastUserMessage)
		run.Mode = entity.RunModeStub
		run.Status = entity.RunStatusFallback
		run.Error = genErr.Error()
		metrics.GenerationTotal.WithLabelValues("generate", "stub", "fallback").Inc()
	} else {
		run.Mode = entity.RunModeAI
		run.Status = entity.RunStatusSuccess
		assistantNote = fmt.Sprintf("Generated %d starter files and an updated preview.", len(artifact.Files))
		metrics.GenerationTotal.WithLabelValues("generate", "ai", "success").Inc()
	}

	if project.Plan != nil {
		run.PlanCounts = project.Plan.SectionCounts()
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		project.ApplyArtifact(artifact)
		if err := s.projects.Update(ctx, project); err != nil {
			return err
		}
		if err := s.runs.Create(ctx, run); err != nil {
			return err
		}
		if assistantNote != "" {
			msg := entity.NewChatMessage(projectID, entity.ChatRoleAssistant, assistantNote)
			return s.chats.Append(ctx, msg)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.invalidate(ctx, projectID)
	metrics.GenerationDuration.WithLabelValues("generate", run.Provider).Observe(time.Since(start).Seconds())

	return project, run, nil
}

// ComparePlans 并发调用多个模型组合生成方案并与基线对比。
// candidates为空时使用默认组合,首个组合作为基线。
func (s *Service) ComparePlans(ctx context.Context, projectID string, candidates []CompareCandidate) (*CompareResult, error) {
	ctx, span := tracer.Tracer("scaffold").Start(ctx, "scaffold.service.compare")
	defer span.End()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		candidates = DefaultCompareCandidates()
	}

	// 先整体校验,避免部分组合已执行后才发现参数错误
	resolved := make([]struct{ provider, model string }, len(candidates))
	for i, cand := range candidates {
		provider, model, err := ResolveProviderModel(cand.Provider, cand.Model)
		if err != nil {
			return nil, err
		}
		resolved[i] = struct{ provider, model string }{provider, model}
	}

	chatContext, _ := s.chatContext(ctx, projectID)

	results := make([]CandidateResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i := range candidates {
		i := i
		g.Go(func() error {
			plan, meta, planErr := s.planner.Plan(gctx, resolved[i].provider, resolved[i].model, project.Description, chatContext)

			result := CandidateResult{
				Provider: meta.Provider,
				Model:    meta.Model,
			}
			if planErr != nil {
				plan = StubPlan(project.Description)
				result.Mode = entity.RunModeStub
				result.Error = planErr.Error()
			} else {
				result.Mode = entity.RunModeAI
			}

			score, detail := ScorePlan(plan)
			result.Plan = plan
			result.QualityScore = score
			result.QualityDetail = detail

			results[i] = result
			return nil
		})
	}
	// 各组合独立回退,Wait不返回错误
	_ = g.Wait()

	baseline := results[0].Plan
	for i := range results {
		if i == 0 {
			continue
		}
		results[i].Diff = DiffPlans(baseline, results[i].Plan)
	}

	// 每个组合各留一条审计记录
	for i := range results {
		run := entity.NewRun(projectID, entity.RunStageCompare)
		run.Provider = results[i].Provider
		run.Model = results[i].Model
		run.Mode = results[i].Mode
		run.Status = entity.RunStatusSuccess
		if results[i].Mode == entity.RunModeStub {
			run.Status = entity.RunStatusFallback
		}
		run.Error = results[i].Error
		score := results[i].QualityScore
		run.QualityScore = &score
		run.QualityDetail = results[i].QualityDetail
		run.PlanCounts = results[i].Plan.SectionCounts()

		if err := s.runs.Create(ctx, run); err != nil {
			logger.Warn(ctx, "记录对比运行失败", err, "project_id", projectID)
		}
	}
	metrics.CompareRunsTotal.WithLabelValues("success").Inc()

	return &CompareResult{Baseline: 0, Candidates: results}, nil
}

// chatContext 拼接最近会话上下文,并返回最近一条用户消息
func (s *Service) chatContext(ctx context.Context, projectID string) (string, string) {
	msgs, err := s.chats.ListRecent(ctx, projectID, s.historyTurns)
	if err != nil {
		logger.Warn(ctx, "读取会话上下文失败", err, "project_id", projectID)
		return "", ""
	}

	turns := make([]node.ChatTurn, 0, len(msgs))
	lastUser := ""
	for _, msg := range msgs {
		turns = append(turns, node.ChatTurn{Role: string(msg.Role), Content: msg.Content})
		if msg.Role == entity.ChatRoleUser {
			lastUser = msg.Content
		}
	}
	return node.JoinChatContext(turns), lastUser
}

func (s *Service) invalidate(ctx context.Context, projectID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateProject(ctx, projectID)
	}
}
