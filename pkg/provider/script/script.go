// Package script provides a deterministic ChatModel that replays a canned
// sequence of responses. It backs the offline scenario and the loop tests.
package script

import (
	"context"
	"fmt"
	"sync"

	"m2demo/pkg/provider"
	"m2demo/pkg/types"
)

// ChatModel replays responses in order, one per Chat call.
type ChatModel struct {
	mu        sync.Mutex
	responses []types.ChatResponse
	next      int
}

// New returns a scripted provider over the given responses.
func New(responses ...types.ChatResponse) *ChatModel {
	return &ChatModel{responses: responses}
}

func (p *ChatModel) Name() string {
	return "script"
}

// Chat implements provider.ChatModel. Calling past the end of the script
// is an error so a runaway loop fails loudly instead of repeating.
func (p *ChatModel) Chat(ctx context.Context, messages []types.Message, opts ...provider.Option) (*types.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= len(p.responses) {
		return nil, fmt.Errorf("script exhausted after %d responses", len(p.responses))
	}
	resp := p.responses[p.next]
	p.next++
	return &resp, nil
}

// Calls reports how many responses have been consumed.
func (p *ChatModel) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

// Demo returns the script used by the offline scenario: two tool-using
// turns followed by a final answer, shaped like a real interleaved run.
func Demo() *ChatModel {
	turn1 := types.ChatResponse{
		Message: types.Message{
			Role: types.RoleAssistant,
			ToolCalls: []types.ToolCall{
				types.NewToolCall("call-offline-1", "get_design_tokens", `{"category": "colors"}`),
				types.NewToolCall("call-offline-2", "get_component_spec", `{"component": "Button"}`),
			},
		},
		Reasoning:    "I should ground the brief in the actual artifacts before writing anything. Tokens first, then the Button contract.",
		FinishReason: "tool_calls",
	}

	turn2 := types.ChatResponse{
		Message: types.Message{
			Role: types.RoleAssistant,
			ToolCalls: []types.ToolCall{
				types.NewToolCall("call-offline-3", "get_pattern_guidance", `{"topic": "composition"}`),
			},
		},
		Reasoning:    "Colors and the Button spec are in hand. One pattern to protect is still missing; composition is the obvious candidate.",
		FinishReason: "tool_calls",
	}

	final := types.ChatResponse{
		Message: types.Message{
			Role: types.RoleAssistant,
			Content: "Brief: anchor the UI section on the primary color ramp and the 4px spacing grid; " +
				"implement Button exactly per its contract (variants, focus ring, loading state); and " +
				"protect the composition-over-props pattern in review. Each tool result fed the next " +
				"thought directly, so no lookup was repeated and the plan came together in three turns.",
		},
		Reasoning:    "All three artifacts are collected; time to integrate them into the brief.",
		FinishReason: "stop",
		Usage: types.Usage{
			PromptTokens:     2840,
			CompletionTokens: 412,
			TotalTokens:      3252,
		},
	}

	return New(turn1, turn2, final)
}

// Ensure interface compliance
var _ provider.ChatModel = (*ChatModel)(nil)
