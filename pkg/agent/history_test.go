package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m2demo/pkg/types"
)

func TestHistory(t *testing.T) {
	h := NewHistory("system prompt", "user prompt")
	assert.Equal(t, 2, h.Len())

	h.Append(types.Message{Role: types.RoleAssistant, Content: "reply"})

	msgs := h.Messages()
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, types.RoleSystem, msgs[0].Role)
	assert.Equal(t, "system prompt", msgs[0].Content)
	assert.Equal(t, types.RoleUser, msgs[1].Role)
	assert.Equal(t, types.RoleAssistant, msgs[2].Role)

	// Messages returns a copy; mutating it must not touch the history.
	msgs[0].Content = "mutated"
	assert.Equal(t, "system prompt", h.Messages()[0].Content)
}
