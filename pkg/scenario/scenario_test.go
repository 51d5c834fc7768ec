package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	s, err := Get("context_package")
	require.NoError(t, err)
	assert.Equal(t, "context_package", s.Name)
	assert.False(t, s.Offline)

	rendered := s.UserPrompt.Render(map[string]any{"model": "MiniMax-M2"})
	assert.Contains(t, rendered, "MiniMax-M2 coding assistant")
	assert.NotContains(t, rendered, "{{model}}")
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("backend_showcase")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "backend_showcase"`)
	assert.Contains(t, err.Error(), "context_package, frontend_showcase, offline")
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"context_package", "frontend_showcase", "offline"}, names)

	names[0] = "mutated"
	assert.Equal(t, "context_package", Names()[0])
}

func TestDefaultExists(t *testing.T) {
	s, err := Get(Default)
	require.NoError(t, err)
	assert.Equal(t, Default, s.Name)
}

func TestOfflineScenario(t *testing.T) {
	s, err := Get("offline")
	require.NoError(t, err)
	assert.True(t, s.Offline)
}

func TestSystemPrompt(t *testing.T) {
	got := SystemPrompt("MiniMax-M2")
	assert.Contains(t, got, "You are MiniMax-M2 running in interleaved mode.")
	assert.Contains(t, got, "keep reasoning transparent")
}
