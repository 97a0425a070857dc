package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webmatic-api/internal/domain/entity"
)

func TestComposeDescription(t *testing.T) {
	tpl := entity.NewTemplate("SaaS CRM", "crm", "Customer relationship management SaaS.")
	tpl.Entities = []string{"Contact", "Deal"}
	tpl.APIEndpoints = []string{"CRUD /contacts"}
	tpl.UIStructure = []string{"Pipeline board"}

	desc := composeDescription(tpl)

	assert.Contains(t, desc, "Customer relationship management SaaS.")
	assert.Contains(t, desc, "Core entities:\n- Contact\n- Deal")
	assert.Contains(t, desc, "API endpoints:\n- CRUD /contacts")
	assert.Contains(t, desc, "UI structure:\n- Pipeline board")
	// 空清单不渲染段落
	assert.NotContains(t, desc, "Integrations:")
	assert.NotContains(t, desc, "Acceptance criteria:")
}

func TestComposeDescription_BareTemplate(t *testing.T) {
	tpl := entity.NewTemplate("Minimal", "misc", "Just a description.")
	assert.Equal(t, "Just a description.", composeDescription(tpl))
}
