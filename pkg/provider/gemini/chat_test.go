package gemini

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m2demo/pkg/provider"
	"m2demo/pkg/types"
)

func TestNewChatModel_RequiresAPIKey(t *testing.T) {
	_, err := NewChatModel(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestToGeminiSchema(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type":        "string",
				"description": "Token category",
				"enum":        []string{"colors", "typography"},
			},
			"limit": map[string]any{"type": "integer"},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"category"},
	}

	out := toGeminiSchema(schema)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"category"}, out.Required)

	require.Contains(t, out.Properties, "category")
	category := out.Properties["category"]
	assert.Equal(t, genai.TypeString, category.Type)
	assert.Equal(t, "Token category", category.Description)
	assert.Equal(t, []string{"colors", "typography"}, category.Enum)

	assert.Equal(t, genai.TypeInteger, out.Properties["limit"].Type)

	tags := out.Properties["tags"]
	assert.Equal(t, genai.TypeArray, tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, genai.TypeString, tags.Items.Type)
}

func TestToGeminiSchema_DecodedJSONShapes(t *testing.T) {
	// Schemas that went through a JSON round trip carry []any, not []string.
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type": "string",
				"enum": []any{"composition", "testing"},
			},
		},
		"required": []any{"topic"},
	}

	out := toGeminiSchema(schema)
	assert.Equal(t, []string{"topic"}, out.Required)
	assert.Equal(t, []string{"composition", "testing"}, out.Properties["topic"].Enum)
}

func TestToGeminiParts_ToolResult(t *testing.T) {
	callNames := map[string]string{"call-1": "get_design_tokens"}

	parts := toGeminiParts(types.Message{
		Role:       types.RoleTool,
		Content:    `{"section": "colors", "tokens": "primary: #2563EB"}`,
		ToolCallID: "call-1",
	}, callNames)

	require.Len(t, parts, 1)
	fr, ok := parts[0].(genai.FunctionResponse)
	require.True(t, ok)
	assert.Equal(t, "get_design_tokens", fr.Name)
	assert.Equal(t, "colors", fr.Response["section"])
}

func TestToGeminiParts_NonJSONToolResultWrapped(t *testing.T) {
	parts := toGeminiParts(types.Message{
		Role:       types.RoleTool,
		Content:    "plain text result",
		ToolCallID: "call-2",
	}, map[string]string{"call-2": "get_pattern_guidance"})

	require.Len(t, parts, 1)
	fr := parts[0].(genai.FunctionResponse)
	assert.Equal(t, map[string]any{"result": "plain text result"}, fr.Response)
}

func TestToGeminiParts_AssistantWithToolCalls(t *testing.T) {
	parts := toGeminiParts(types.Message{
		Role:    types.RoleAssistant,
		Content: "checking the tokens",
		ToolCalls: []types.ToolCall{
			types.NewToolCall("call-3", "get_design_tokens", `{"category": "spacing"}`),
		},
	}, nil)

	require.Len(t, parts, 2)
	assert.Equal(t, genai.Text("checking the tokens"), parts[0])

	fc, ok := parts[1].(genai.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "get_design_tokens", fc.Name)
	assert.Equal(t, map[string]any{"category": "spacing"}, fc.Args)
}

func TestToChatResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content: &genai.Content{
				Role: "model",
				Parts: []genai.Part{
					genai.Text("partial "),
					genai.Text("answer"),
					genai.FunctionCall{Name: "get_component_spec", Args: map[string]any{"component": "Card"}},
					genai.FunctionCall{Name: "get_pattern_guidance", Args: map[string]any{"topic": "testing"}},
				},
			},
		}},
		UsageMetadata: &genai.UsageMetadata{
			PromptTokenCount:     100,
			CandidatesTokenCount: 20,
			TotalTokenCount:      120,
		},
	}

	out := toChatResponse(resp)
	assert.Equal(t, "partial answer", out.Message.Content)
	assert.Equal(t, "tool_calls", out.FinishReason)
	assert.Empty(t, out.Reasoning)
	assert.Equal(t, 120, out.Usage.TotalTokens)

	require.Len(t, out.Message.ToolCalls, 2)
	first, second := out.Message.ToolCalls[0], out.Message.ToolCalls[1]
	assert.Equal(t, "get_component_spec", first.Function.Name)
	assert.JSONEq(t, `{"component": "Card"}`, first.Function.Arguments)
	assert.True(t, strings.HasPrefix(first.ID, "call-"))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestToChatResponse_SyntheticIDsUniqueAcrossTurns(t *testing.T) {
	build := func() string {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Role:  "model",
					Parts: []genai.Part{genai.FunctionCall{Name: "get_design_tokens", Args: map[string]any{}}},
				},
			}},
		}
		return toChatResponse(resp).Message.ToolCalls[0].ID
	}

	assert.NotEqual(t, build(), build())
}

func TestToChatResponse_EmptyCandidates(t *testing.T) {
	out := toChatResponse(&genai.GenerateContentResponse{})
	assert.Empty(t, out.Message.Content)
	assert.Empty(t, out.Message.ToolCalls)
	assert.Equal(t, types.RoleAssistant, out.Message.Role)
}

// TestChatLive exercises the real endpoint; it is skipped unless
// GEMINI_API_KEY is set.
func TestChatLive(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live test")
	}

	m, err := NewChatModel(context.Background(), Config{APIKey: apiKey})
	require.NoError(t, err)

	resp, err := m.Chat(context.Background(), []types.Message{
		{Role: types.RoleUser, Content: "Reply with the single word: ok"},
	}, provider.WithMaxTokens(16))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message.Content)
}
