package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p := NewProject("owner-1", "Notes", "a notes app")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, ProjectStatusCreated, p.Status)
	assert.Nil(t, p.Plan)
	assert.Nil(t, p.Artifact)
}

func TestProjectStateTransitions(t *testing.T) {
	p := NewProject("owner-1", "Notes", "a notes app")

	p.ApplyPlan(&Plan{Backend: []string{"api"}})
	assert.Equal(t, ProjectStatusPlanned, p.Status)
	require.NotNil(t, p.Plan)

	p.ApplyArtifact(&Artifact{HTMLPreview: "<html></html>"})
	assert.Equal(t, ProjectStatusGenerated, p.Status)
	require.NotNil(t, p.Artifact)
}

func TestPlanIsEmpty(t *testing.T) {
	var nilPlan *Plan
	assert.True(t, nilPlan.IsEmpty())
	assert.True(t, (&Plan{}).IsEmpty())
	assert.False(t, (&Plan{Database: []string{"tables"}}).IsEmpty())
}

func TestPlanSectionCounts(t *testing.T) {
	var nilPlan *Plan
	assert.Equal(t, map[string]int{"frontend": 0, "backend": 0, "database": 0}, nilPlan.SectionCounts())

	plan := &Plan{Frontend: []string{"a", "b"}, Backend: []string{"c"}}
	assert.Equal(t, map[string]int{"frontend": 2, "backend": 1, "database": 0}, plan.SectionCounts())
}

func TestUserPassword(t *testing.T) {
	u := NewUser("u@example.com", "u")
	require.NoError(t, u.SetPassword("correct horse battery"))

	assert.True(t, u.CheckPassword("correct horse battery"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.NotEqual(t, "correct horse battery", u.PasswordHash)
}
