package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateRender(t *testing.T) {
	tpl := NewTemplate("You are {{model}} running scenario {{name}}")

	got := tpl.Render(map[string]any{"model": "MiniMax-M2", "name": "context_package"})
	assert.Equal(t, "You are MiniMax-M2 running scenario context_package", got)

	// Missing keys stay in place, non-string values are formatted.
	assert.Equal(t, "You are {{model}} running scenario 2",
		tpl.Render(map[string]any{"name": 2}))
	assert.Equal(t, tpl.Text, tpl.Render(nil))
}
