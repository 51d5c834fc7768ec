// Package gemini implements provider.ChatModel using Google Gemini.
// Gemini has no separated-reasoning wire field, so ChatResponse.Reasoning
// is always empty (zero reasoning segments is a valid turn).
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"m2demo/pkg/provider"
	"m2demo/pkg/types"
)

// Config contains Gemini credential and runtime options.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
}

// ChatModel implements provider.ChatModel using Google Gemini.
type ChatModel struct {
	client             *genai.Client
	defaultModel       string
	defaultTemperature float64
}

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.5
)

// NewChatModel builds a Gemini chat provider.
func NewChatModel(ctx context.Context, cfg Config) (provider.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}

	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}

	return &ChatModel{
		client:             client,
		defaultModel:       modelName,
		defaultTemperature: temp,
	}, nil
}

func (m *ChatModel) Name() string {
	return "gemini"
}

// Chat implements provider.ChatModel.Chat.
func (m *ChatModel) Chat(ctx context.Context, messages []types.Message, opts ...provider.Option) (*types.ChatResponse, error) {
	if len(messages) == 0 {
		return nil, errors.New("gemini: no messages to send")
	}

	cs, tail, err := m.prepareSession(messages, opts)
	if err != nil {
		return nil, err
	}

	resp, err := cs.SendMessage(ctx, tail...)
	if err != nil {
		return nil, err
	}

	return toChatResponse(resp), nil
}

// prepareSession builds a ChatSession from all but the trailing turn and
// returns the parts to send. Consecutive trailing tool messages are sent
// together because Gemini expects all function responses for a turn in
// one content block.
func (m *ChatModel) prepareSession(messages []types.Message, opts []provider.Option) (*genai.ChatSession, []genai.Part, error) {
	options := &provider.ChatOptions{
		Model:       m.defaultModel,
		Temperature: m.defaultTemperature,
	}
	for _, o := range opts {
		o(options)
	}

	gm := m.client.GenerativeModel(options.Model)
	gm.SetTemperature(float32(options.Temperature))
	if options.MaxTokens > 0 {
		gm.SetMaxOutputTokens(int32(options.MaxTokens))
	}
	if len(options.Tools) > 0 {
		gm.Tools = toGeminiTools(options.Tools)
	}

	// Tool call IDs exist only on the OpenAI wire; remember which call ID
	// belonged to which function so tool results can be converted back.
	callNames := map[string]string{}
	for _, msg := range messages {
		for _, tc := range msg.ToolCalls {
			callNames[tc.ID] = tc.Function.Name
		}
	}

	split := len(messages) - 1
	if messages[split].Role == types.RoleTool {
		for split > 0 && messages[split-1].Role == types.RoleTool {
			split--
		}
	}

	cs := gm.StartChat()
	for _, msg := range messages[:split] {
		switch msg.Role {
		case types.RoleSystem:
			// Gemini carries the system prompt on the model, not in history.
			gm.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(msg.Content)},
			}
		case types.RoleAssistant:
			cs.History = append(cs.History, &genai.Content{
				Role:  "model",
				Parts: toGeminiParts(msg, callNames),
			})
		case types.RoleTool:
			cs.History = append(cs.History, &genai.Content{
				Role:  "function",
				Parts: toGeminiParts(msg, callNames),
			})
		default:
			cs.History = append(cs.History, &genai.Content{
				Role:  "user",
				Parts: toGeminiParts(msg, callNames),
			})
		}
	}

	var tail []genai.Part
	for _, msg := range messages[split:] {
		tail = append(tail, toGeminiParts(msg, callNames)...)
	}
	if len(tail) == 0 {
		tail = []genai.Part{genai.Text("")}
	}

	return cs, tail, nil
}

func toGeminiParts(msg types.Message, callNames map[string]string) []genai.Part {
	var parts []genai.Part

	if msg.Role == types.RoleTool {
		response := map[string]any{}
		if err := json.Unmarshal([]byte(msg.Content), &response); err != nil {
			response = map[string]any{"result": msg.Content}
		}
		parts = append(parts, genai.FunctionResponse{
			Name:     callNames[msg.ToolCallID],
			Response: response,
		})
		return parts
	}

	if msg.Content != "" {
		parts = append(parts, genai.Text(msg.Content))
	}
	for _, tc := range msg.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		parts = append(parts, genai.FunctionCall{
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return parts
}

func toGeminiTools(defs []types.ToolDefinition) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		decl := &genai.FunctionDeclaration{
			Name:        def.Function.Name,
			Description: def.Function.Description,
		}
		if params, ok := def.Function.Parameters.(map[string]any); ok {
			decl.Parameters = toGeminiSchema(params)
		}
		decls = append(decls, decl)
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// toGeminiSchema converts a JSON Schema object into the genai schema type.
// Only the subset the tool package generates is supported.
func toGeminiSchema(schema map[string]any) *genai.Schema {
	out := &genai.Schema{Type: toGeminiType(schema["type"])}

	if desc, ok := schema["description"].(string); ok {
		out.Description = desc
	}
	if enum, ok := schema["enum"].([]string); ok {
		out.Enum = enum
	} else if raw, ok := schema["enum"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out.Enum = append(out.Enum, s)
			}
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			if p, ok := prop.(map[string]any); ok {
				out.Properties[name] = toGeminiSchema(p)
			}
		}
	}
	if required, ok := schema["required"].([]string); ok {
		out.Required = required
	} else if raw, ok := schema["required"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		out.Items = toGeminiSchema(items)
	}

	return out
}

func toGeminiType(v any) genai.Type {
	s, _ := v.(string)
	switch s {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}

func toChatResponse(resp *genai.GenerateContentResponse) *types.ChatResponse {
	out := &types.ChatResponse{
		Message: types.Message{Role: types.RoleAssistant},
	}

	if resp.UsageMetadata != nil {
		out.Usage = types.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}

	cand := resp.Candidates[0]
	var content string
	// IDs must stay unique across turns so tool results map back to the
	// right call when the history is replayed.
	callPrefix := uuid.NewString()[:8]
	callSeq := 0

	for _, part := range cand.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			content += string(p)
		case genai.FunctionCall:
			callSeq++
			args, err := json.Marshal(p.Args)
			if err != nil {
				args = []byte("{}")
			}
			out.Message.ToolCalls = append(out.Message.ToolCalls,
				types.NewToolCall(fmt.Sprintf("call-%s-%d", callPrefix, callSeq), p.Name, string(args)))
		}
	}
	out.Message.Content = content
	out.FinishReason = toFinishReason(cand.FinishReason, len(out.Message.ToolCalls) > 0)

	return out
}

func toFinishReason(fr genai.FinishReason, hasToolCalls bool) string {
	if hasToolCalls {
		return "tool_calls"
	}
	switch fr {
	case genai.FinishReasonStop:
		return "stop"
	case genai.FinishReasonMaxTokens:
		return "length"
	default:
		return fmt.Sprintf("unknown:%d", fr)
	}
}

// Ensure interface compliance
var _ provider.ChatModel = (*ChatModel)(nil)
