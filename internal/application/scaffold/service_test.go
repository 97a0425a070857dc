package scaffold

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/domain/repository"
	"webmatic-api/internal/workflow/chain"
	"webmatic-api/internal/workflow/prompt"
	apperrors "webmatic-api/pkg/errors"
)

// fakeChatModel 返回固定回复的聊天模型
type fakeChatModel struct {
	content string
	err     error
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.content}, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

// fakeFactory 所有提供方返回同一个模型
type fakeFactory struct {
	model model.BaseChatModel
}

func (f *fakeFactory) Get(ctx context.Context, provider string) (model.BaseChatModel, error) {
	return f.model, nil
}

func (f *fakeFactory) DefaultProvider() string { return "anthropic" }

func (f *fakeFactory) ModelName(provider string) string {
	if provider == "openai" {
		return "gpt-5"
	}
	return "claude-4-sonnet"
}

// memProjects 内存项目仓储
type memProjects struct {
	mu    sync.Mutex
	items map[string]*entity.Project
}

func newMemProjects() *memProjects {
	return &memProjects{items: make(map[string]*entity.Project)}
}

func (m *memProjects) Create(ctx context.Context, p *entity.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.ID] = p
	return nil
}

func (m *memProjects) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProjectNotFound
}

func (m *memProjects) List(ctx context.Context, ownerID string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*entity.Project
	for _, p := range m.items {
		if p.OwnerID == ownerID {
			items = append(items, p)
		}
	}
	return &repository.PagedResult[*entity.Project]{Items: items, Total: int64(len(items))}, nil
}

func (m *memProjects) Update(ctx context.Context, p *entity.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; !ok {
		return apperrors.ErrProjectNotFound
	}
	m.items[p.ID] = p
	return nil
}

func (m *memProjects) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// memChats 内存会话仓储
type memChats struct {
	mu   sync.Mutex
	msgs []*entity.ChatMessage
}

func (m *memChats) Append(ctx context.Context, msg *entity.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memChats) ListByProject(ctx context.Context, projectID string) ([]*entity.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ChatMessage
	for _, msg := range m.msgs {
		if msg.ProjectID == projectID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memChats) ListRecent(ctx context.Context, projectID string, limit int) ([]*entity.ChatMessage, error) {
	all, _ := m.ListByProject(ctx, projectID)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// memRuns 内存运行记录仓储
type memRuns struct {
	mu   sync.Mutex
	runs []*entity.Run
}

func (m *memRuns) Create(ctx context.Context, run *entity.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *memRuns) ListByProject(ctx context.Context, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.Run], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Run
	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].ProjectID == projectID {
			out = append(out, m.runs[i])
		}
	}
	return &repository.PagedResult[*entity.Run]{Items: out, Total: int64(len(out))}, nil
}

// noopTx 直接执行的事务管理器
type noopTx struct{}

func (noopTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

const planReply = "```json\n{\"frontend\":[\"app shell\"],\"backend\":[\"api endpoint\",\"auth flow\"],\"database\":[\"schema migration\"]}\n```"

const artifactReply = `{"files":[{"path":"index.html","content":"<html>ok</html>"},{"path":"app.js","content":"console.log(1)"}],"html_preview":"<html>ok</html>"}`

type fixture struct {
	svc      *Service
	projects *memProjects
	chats    *memChats
	runs     *memRuns
	project  *entity.Project
}

func newFixture(t *testing.T, cm model.BaseChatModel) *fixture {
	t.Helper()

	factory := &fakeFactory{model: cm}
	prompts := prompt.NewRegistry()
	planChain := chain.NewPlanChain(factory, prompts, 0.2, 900)
	artifactChain := chain.NewArtifactChain(factory, prompts, 0.2, 1800)
	planner := NewPlanner(planChain, factory, 10*time.Second)
	generator := NewGenerator(artifactChain, factory, 10*time.Second)

	projects := newMemProjects()
	chats := &memChats{}
	runs := &memRuns{}

	svc := NewService(projects, chats, runs, noopTx{}, planner, generator, nil, 10)

	project := entity.NewProject("owner-1", "Notes App", "An app where users login and keep notes")
	require.NoError(t, projects.Create(context.Background(), project))

	return &fixture{svc: svc, projects: projects, chats: chats, runs: runs, project: project}
}

func TestScaffoldProject_AISuccess(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: planReply})

	project, run, err := f.svc.ScaffoldProject(context.Background(), f.project.ID, Options{Provider: "claude"})
	require.NoError(t, err)

	assert.Equal(t, entity.ProjectStatusPlanned, project.Status)
	require.NotNil(t, project.Plan)
	assert.Equal(t, []string{"app shell"}, project.Plan.Frontend)

	assert.Equal(t, entity.RunStagePlan, run.Stage)
	assert.Equal(t, entity.RunModeAI, run.Mode)
	assert.Equal(t, entity.RunStatusSuccess, run.Status)
	assert.Equal(t, "anthropic", run.Provider)
	assert.Equal(t, "claude-4-sonnet", run.Model)
	assert.Empty(t, run.Error)
	require.NotNil(t, run.QualityScore)
	assert.Positive(t, *run.QualityScore)
	assert.Equal(t, map[string]int{"frontend": 1, "backend": 2, "database": 1}, run.PlanCounts)

	require.Len(t, f.runs.runs, 1)
}

func TestScaffoldProject_FallbackOnModelError(t *testing.T) {
	f := newFixture(t, &fakeChatModel{err: errors.New("upstream timeout")})

	project, run, err := f.svc.ScaffoldProject(context.Background(), f.project.ID, Options{})
	require.NoError(t, err)

	assert.Equal(t, entity.ProjectStatusPlanned, project.Status)
	require.NotNil(t, project.Plan)
	// 描述含login/users,桩方案追加认证占位条目
	assert.Contains(t, project.Plan.Backend, "Auth module placeholder (JWT/OAuth ready)")

	assert.Equal(t, entity.RunModeStub, run.Mode)
	assert.Equal(t, entity.RunStatusFallback, run.Status)
	assert.Contains(t, run.Error, "upstream timeout")
	require.NotNil(t, run.QualityScore)
	assert.Positive(t, *run.QualityScore)
}

func TestScaffoldProject_FallbackOnGarbageOutput(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: "I cannot produce JSON today, sorry."})

	_, run, err := f.svc.ScaffoldProject(context.Background(), f.project.ID, Options{})
	require.NoError(t, err)
	assert.Equal(t, entity.RunModeStub, run.Mode)
	assert.Equal(t, entity.RunStatusFallback, run.Status)
}

func TestScaffoldProject_EmptyAIPlanIsNotFallback(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: `{"frontend":[],"backend":[],"database":[]}`})

	project, run, err := f.svc.ScaffoldProject(context.Background(), f.project.ID, Options{})
	require.NoError(t, err)

	// 合法但为空的方案不触发桩回退,评分为0
	assert.Equal(t, entity.RunModeAI, run.Mode)
	assert.Equal(t, entity.RunStatusSuccess, run.Status)
	require.NotNil(t, run.QualityScore)
	assert.Zero(t, *run.QualityScore)
	assert.Equal(t, "no_plan", run.QualityDetail.Reason)

	require.NotNil(t, project.Plan)
	assert.Empty(t, project.Plan.Frontend)
}

func TestScaffoldProject_UnknownProviderFallsBackToAuto(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: planReply})

	_, run, err := f.svc.ScaffoldProject(context.Background(), f.project.ID, Options{Provider: "gemini"})
	require.NoError(t, err)
	assert.Equal(t, entity.RunModeAI, run.Mode)
	assert.Equal(t, "anthropic", run.Provider)
	assert.Equal(t, "claude-4-sonnet", run.Model)
}

func TestScaffoldProject_UnsupportedModel(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: planReply})

	_, _, err := f.svc.ScaffoldProject(context.Background(), f.project.ID, Options{Provider: "gpt", Model: "gpt-3.5"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnsupportedModel, appErr.Code)
	assert.Empty(t, f.runs.runs)
}

func TestScaffoldProject_ProjectNotFound(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: planReply})

	_, _, err := f.svc.ScaffoldProject(context.Background(), "missing", Options{})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestGenerateArtifact_AISuccess(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: artifactReply})

	project, run, err := f.svc.GenerateArtifact(context.Background(), f.project.ID, Options{Provider: "gpt"})
	require.NoError(t, err)

	assert.Equal(t, entity.ProjectStatusGenerated, project.Status)
	require.NotNil(t, project.Artifact)
	assert.Len(t, project.Artifact.Files, 2)
	assert.Equal(t, "<html>ok</html>", project.Artifact.HTMLPreview)

	assert.Equal(t, entity.RunStageGenerate, run.Stage)
	assert.Equal(t, entity.RunModeAI, run.Mode)
	assert.Equal(t, "openai", run.Provider)

	// 成功时追加一条助手会话消息
	msgs, err := f.chats.ListByProject(context.Background(), f.project.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, entity.ChatRoleAssistant, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "2 starter files")
}

func TestGenerateArtifact_FallbackUsesLastUserMessage(t *testing.T) {
	f := newFixture(t, &fakeChatModel{err: errors.New("provider down")})

	msg := entity.NewChatMessage(f.project.ID, entity.ChatRoleUser, "Make it a recipe box")
	require.NoError(t, f.chats.Append(context.Background(), msg))

	project, run, err := f.svc.GenerateArtifact(context.Background(), f.project.ID, Options{})
	require.NoError(t, err)

	assert.Equal(t, entity.RunModeStub, run.Mode)
	require.NotNil(t, project.Artifact)
	assert.Contains(t, project.Artifact.HTMLPreview, "Make it a recipe box")

	// 回退时不追加助手消息
	msgs, _ := f.chats.ListByProject(context.Background(), f.project.ID)
	assert.Len(t, msgs, 1)
}

func TestComparePlans_DefaultCandidates(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: planReply})

	result, err := f.svc.ComparePlans(context.Background(), f.project.ID, nil)
	require.NoError(t, err)

	assert.Zero(t, result.Baseline)
	require.Len(t, result.Candidates, 2)

	base := result.Candidates[0]
	assert.Equal(t, entity.RunModeAI, base.Mode)
	assert.Nil(t, base.Diff)
	assert.Positive(t, base.QualityScore)

	other := result.Candidates[1]
	require.NotNil(t, other.Diff)
	// 两个组合收到同样的回复,差异为空
	assert.True(t, other.Diff.IsEmpty())
	assert.NotEmpty(t, other.Diff.Frontend.Overlap)

	// 每个组合各留一条审计记录
	require.Len(t, f.runs.runs, 2)
	assert.Equal(t, entity.RunStageCompare, f.runs.runs[0].Stage)
	assert.Equal(t, "anthropic", f.runs.runs[0].Provider)
	assert.Equal(t, "claude-4-sonnet", f.runs.runs[0].Model)
	assert.Equal(t, "openai", f.runs.runs[1].Provider)
	assert.Equal(t, "gpt-5", f.runs.runs[1].Model)
	for _, run := range f.runs.runs {
		assert.Equal(t, entity.RunStageCompare, run.Stage)
		assert.Equal(t, entity.RunStatusSuccess, run.Status)
		require.NotNil(t, run.QualityScore)
		assert.Positive(t, *run.QualityScore)
	}
}

func TestComparePlans_FallbackPerCandidate(t *testing.T) {
	f := newFixture(t, &fakeChatModel{err: errors.New("both down")})

	result, err := f.svc.ComparePlans(context.Background(), f.project.ID, nil)
	require.NoError(t, err)

	for _, cand := range result.Candidates {
		assert.Equal(t, entity.RunModeStub, cand.Mode)
		assert.NotEmpty(t, cand.Error)
		require.NotNil(t, cand.Plan)
	}

	require.Len(t, f.runs.runs, 2)
	for _, run := range f.runs.runs {
		assert.Equal(t, entity.RunModeStub, run.Mode)
		assert.Equal(t, entity.RunStatusFallback, run.Status)
		assert.NotEmpty(t, run.Error)
	}
}

func TestComparePlans_InvalidCandidate(t *testing.T) {
	f := newFixture(t, &fakeChatModel{content: planReply})

	_, err := f.svc.ComparePlans(context.Background(), f.project.ID, []CompareCandidate{
		{Provider: "claude", Model: "claude-4-sonnet"},
		{Provider: "gpt", Model: "not-a-model"},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnsupportedModel, appErr.Code)
}
