package agent

import (
	"m2demo/pkg/types"
)

// History is the append-only message sequence for one run. It is owned
// exclusively by the loop; messages are never rewritten once appended.
type History struct {
	messages []types.Message
}

// NewHistory seeds a conversation with the system and user prompts.
func NewHistory(systemPrompt, userPrompt string) *History {
	return &History{messages: []types.Message{
		{Role: types.RoleSystem, Content: systemPrompt},
		{Role: types.RoleUser, Content: userPrompt},
	}}
}

// Append adds a message to the end of the conversation.
func (h *History) Append(msg types.Message) {
	h.messages = append(h.messages, msg)
}

// Messages returns a copy of the conversation so callers cannot mutate
// internal state.
func (h *History) Messages() []types.Message {
	out := make([]types.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages.
func (h *History) Len() int {
	return len(h.messages)
}
