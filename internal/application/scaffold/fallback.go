package scaffold

import (
	"fmt"
	"html"
	"strings"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/workflow/node"
)

// stubFrontend 桩方案前端基线条目
var stubFrontend = []string{
	"Scaffold React app shell",
	"Header with brand + project switcher",
	"Project creation form (name, description)",
	"Projects table with status and actions",
	"Detail panel with tabs: Plan, API, DB",
}

// stubBackend 桩方案后端基线条目
var stubBackend = []string{
	"HTTP API with /v1 prefix and CORS",
	"Projects CRUD (UUID as id)",
	"Scaffold endpoint to produce initial plan",
	"Request DTOs with binding validation",
}

// stubDatabase 桩方案数据库基线条目
var stubDatabase = []string{
	"Tables: projects, runs, chat_messages",
	"Indexes: projects(id), projects(status)",
	"Row schema: id, name, description, plan",
}

// stubTriggers 描述中的触发词与追加的后端条目
var stubTriggers = []struct {
	words  []string
	bullet string
}{
	{[]string{"auth", "login", "users"}, "Auth module placeholder (JWT/OAuth ready)"},
	{[]string{"payment", "stripe", "checkout"}, "Stripe integration placeholder"},
}

// StubPlan 生成确定性的桩方案。基线条目固定,
// 描述中出现触发词时在后端部分追加对应占位条目。
func StubPlan(description string) *entity.Plan {
	backend := make([]string, len(stubBackend))
	copy(backend, stubBackend)

	lower := strings.ToLower(description)
	for _, trigger := range stubTriggers {
		for _, w := range trigger.words {
			if strings.Contains(lower, w) {
				backend = append(backend, trigger.bullet)
				break
			}
		}
	}

	frontend := make([]string, len(stubFrontend))
	copy(frontend, stubFrontend)
	database := make([]string, len(stubDatabase))
	copy(database, stubDatabase)

	return &entity.Plan{
		Frontend: frontend,
		Backend:  backend,
		Database: database,
	}
}

// StubArtifact 生成确定性的桩产物:单个index.html预览页。
// 标题优先取最近一条用户消息,否则取描述,统一截断到60字符。
func StubArtifact(description, lastUserMessage string) *entity.Artifact {
	title := node.TruncateByRunes(lastUserMessage, 60)
	if title == "" {
		title = node.TruncateByRunes(description, 60)
	}
	if title == "" {
		title = "Your Project"
	}

	preview := renderStubPreview(title)

	return &entity.Artifact{
		Files: []entity.ArtifactFile{
			{Path: "index.html", Content: preview},
		},
		HTMLPreview: preview,
	}
}

// renderStubPreview 渲染桩预览页:主视觉区加三个特性卡片
func renderStubPreview(title string) string {
	escaped := html.EscapeString(title)
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f6f7fb; color: #1f2430; }
.hero { padding: 64px 24px; text-align: center; background: #fff; border-bottom: 1px solid #e4e7ef; }
.hero h1 { margin: 0 0 12px; font-size: 32px; }
.hero p { margin: 0; color: #5b6372; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 16px; padding: 32px 24px; max-width: 960px; margin: 0 auto; }
.card { background: #fff; border: 1px solid #e4e7ef; border-radius: 10px; padding: 20px; }
.card h3 { margin: 0 0 8px; font-size: 16px; }
.card p { margin: 0; color: #5b6372; font-size: 14px; }
</style>
</head>
<body>
<section class="hero">
<h1>%s</h1>
<p>Auto-generated preview. Refine via chat on the left.</p>
</section>
<section class="cards">
<div class="card"><h3>Feature One</h3><p>Core capability scaffolded and ready to extend.</p></div>
<div class="card"><h3>Feature Two</h3><p>Data layer wired for your main entities.</p></div>
<div class="card"><h3>Feature Three</h3><p>API surface prepared for integration.</p></div>
</section>
</body>
</html>`, escaped, escaped)
}
