package docs

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m2demo/pkg/tool"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := NewLibrary()
	require.NoError(t, err)
	return lib
}

func call(t *testing.T, lib *Library, name string, input map[string]any) map[string]string {
	t.Helper()
	r := tool.NewRegistry()
	RegisterAll(r, lib)
	tl, err := r.Get(name)
	require.NoError(t, err)

	raw, err := tl.Execute(context.Background(), input)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestDesignTokens(t *testing.T) {
	lib := newTestLibrary(t)

	payload := call(t, lib, "get_design_tokens", map[string]any{"category": "colors"})
	assert.Equal(t, "colors", payload["section"])
	assert.NotEmpty(t, payload["tokens"])
	assert.LessOrEqual(t, len([]rune(payload["tokens"])), 1200)

	// Matching is case-insensitive and accepts substrings of the heading.
	payload = call(t, lib, "get_design_tokens", map[string]any{"category": "TYPO"})
	assert.Equal(t, "typography", payload["section"])
}

func TestDesignTokens_NotFound(t *testing.T) {
	lib := newTestLibrary(t)

	payload := call(t, lib, "get_design_tokens", map[string]any{"category": "animations"})
	assert.Equal(t, "not_found", payload["section"])
	assert.Contains(t, payload["tokens"], `No section matched "animations"`)
	assert.Contains(t, payload["tokens"], "colors")
	assert.Contains(t, payload["tokens"], "breakpoints")
}

func TestComponentSpec(t *testing.T) {
	lib := newTestLibrary(t)

	// Lowercased query resolves to the canonical heading.
	payload := call(t, lib, "get_component_spec", map[string]any{"component": "button"})
	assert.Equal(t, "Button", payload["component"])
	assert.NotEmpty(t, payload["spec"])
	assert.LessOrEqual(t, len([]rune(payload["spec"])), 1600)

	for _, name := range []string{"Card", "Input", "Modal", "Alert"} {
		payload := call(t, lib, "get_component_spec", map[string]any{"component": strings.ToLower(name)})
		assert.Equal(t, name, payload["component"])
		assert.NotEmpty(t, payload["spec"])
	}
}

func TestComponentSpec_NotFoundListsComponents(t *testing.T) {
	lib := newTestLibrary(t)

	payload := call(t, lib, "get_component_spec", map[string]any{"component": "Carousel"})
	assert.Equal(t, "Carousel", payload["component"])
	assert.Contains(t, payload["spec"], `No component matched "Carousel"`)
	for _, name := range []string{"Button", "Card", "Input", "Modal", "Alert"} {
		assert.Contains(t, payload["spec"], name)
	}
	// The document title must never be listed as a component.
	assert.NotContains(t, payload["spec"], "Component Specifications")
}

func TestComponentSpec_EmptyQueryNeverMatches(t *testing.T) {
	lib := newTestLibrary(t)

	payload := call(t, lib, "get_component_spec", map[string]any{"component": ""})
	assert.Contains(t, payload["spec"], "No component matched")
}

func TestPatternGuidance(t *testing.T) {
	lib := newTestLibrary(t)

	payload := call(t, lib, "get_pattern_guidance", map[string]any{"topic": "composition"})
	assert.Equal(t, "component composition", payload["topic"])
	assert.NotEmpty(t, payload["guidance"])
	assert.LessOrEqual(t, len([]rune(payload["guidance"])), 1600)
}

func TestPatternGuidance_DeepMatchFallsBackToBody(t *testing.T) {
	lib := newTestLibrary(t)

	// "props" is not a heading but appears in section prose.
	payload := call(t, lib, "get_pattern_guidance", map[string]any{"topic": "props"})
	assert.NotContains(t, payload["guidance"], "No pattern matched")
	assert.NotEmpty(t, payload["topic"])
}

func TestPatternGuidance_NotFound(t *testing.T) {
	lib := newTestLibrary(t)

	payload := call(t, lib, "get_pattern_guidance", map[string]any{"topic": "zzzzz"})
	assert.Contains(t, payload["guidance"], `No pattern matched "zzzzz"`)
	assert.Contains(t, payload["guidance"], "naming conventions")
}

func TestSplitSections(t *testing.T) {
	doc := SplitSections("intro line\n\n## Alpha\na body\n\n## Beta\n\n## Gamma\ng body\n")

	assert.Equal(t, []string{"introduction", "alpha", "gamma"}, doc.Keys())

	key, body, ok := doc.Match("ALPHA")
	require.True(t, ok)
	assert.Equal(t, "alpha", key)
	assert.Equal(t, "a body", body)

	// Beta trimmed to nothing and dropped.
	_, _, ok = doc.Match("beta")
	assert.False(t, ok)

	key, _, ok = doc.MatchDeep("g body")
	require.True(t, ok)
	assert.Equal(t, "gamma", key)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ab", truncate("ab", 5))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "hél", truncate("héllo", 3))
}
