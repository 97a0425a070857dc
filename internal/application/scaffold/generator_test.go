package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeArtifact_DropsInvalidFiles(t *testing.T) {
	env := &artifactEnvelope{
		HTMLPreview: "<html>p</html>",
	}
	env.Files = []struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}{
		{Path: "index.html", Content: "<html>a</html>"},
		{Path: "   ", Content: "dropped"},
		{Path: "empty.js", Content: ""},
	}

	artifact := normalizeArtifact(env)
	require.NotNil(t, artifact)
	assert.Len(t, artifact.Files, 1)
	assert.Equal(t, "index.html", artifact.Files[0].Path)
}

func TestNormalizeArtifact_PreviewFallsBackToHTMLFile(t *testing.T) {
	env := &artifactEnvelope{}
	env.Files = []struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}{
		{Path: "app.js", Content: "js"},
		{Path: "home.html", Content: "<html>home</html>"},
	}

	artifact := normalizeArtifact(env)
	require.NotNil(t, artifact)
	assert.Equal(t, "<html>home</html>", artifact.HTMLPreview)
}

func TestNormalizeArtifact_Empty(t *testing.T) {
	assert.Nil(t, normalizeArtifact(&artifactEnvelope{}))
	assert.Nil(t, normalizeArtifact(&artifactEnvelope{HTMLPreview: "   "}))
}
