// Package minimax implements provider.ChatModel against the MiniMax
// OpenAI-compatible chat completion API.
package minimax

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"m2demo/pkg/provider"
	"m2demo/pkg/types"
)

// Config contains MiniMax credential and runtime options.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	HTTPClient  *http.Client
	Temperature float64
}

// ChatModel implements provider.ChatModel using the go-openai client.
// The MiniMax endpoint speaks the OpenAI wire format plus a
// `reasoning_split` request field that separates the thinking segment
// from the answer; the field is injected at the transport level because
// the client's request struct cannot carry vendor extensions.
type ChatModel struct {
	client             *goopenai.Client
	defaultModel       string
	defaultTemperature float64
}

const (
	defaultBaseURL     = "https://api.minimax.io/v1"
	defaultModel       = "MiniMax-M2"
	defaultTemperature = 0.7
)

// NewChatModel builds a chat completion provider for MiniMax.
func NewChatModel(cfg Config) (provider.ChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("minimax api key is required")
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = defaultBaseURL
	if strings.TrimSpace(cfg.BaseURL) != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = withReasoningSplit(cfg.HTTPClient)

	modelName := cfg.Model
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModel
	}

	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}

	return &ChatModel{
		client:             goopenai.NewClientWithConfig(apiCfg),
		defaultModel:       modelName,
		defaultTemperature: temp,
	}, nil
}

func (m *ChatModel) Name() string {
	return "minimax"
}

func (m *ChatModel) prepareRequest(messages []types.Message, opts []provider.Option) (goopenai.ChatCompletionRequest, *provider.ChatOptions) {
	options := &provider.ChatOptions{
		Model:          m.defaultModel,
		Temperature:    m.defaultTemperature,
		ReasoningSplit: true,
	}
	for _, o := range opts {
		o(options)
	}

	wireMsgs := make([]goopenai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		oMsg := goopenai.ChatCompletionMessage{
			Content: msg.Content,
			Name:    msg.Name,
		}

		switch msg.Role {
		case types.RoleSystem:
			oMsg.Role = goopenai.ChatMessageRoleSystem
		case types.RoleUser:
			oMsg.Role = goopenai.ChatMessageRoleUser
		case types.RoleAssistant:
			oMsg.Role = goopenai.ChatMessageRoleAssistant
			if len(msg.ToolCalls) > 0 {
				oMsg.ToolCalls = toWireToolCalls(msg.ToolCalls)
			}
		case types.RoleTool:
			oMsg.Role = goopenai.ChatMessageRoleTool
			oMsg.ToolCallID = msg.ToolCallID
		default:
			oMsg.Role = goopenai.ChatMessageRoleUser
		}
		wireMsgs[i] = oMsg
	}

	req := goopenai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    wireMsgs,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
		Stop:        options.Stop,
	}

	if len(options.Tools) > 0 {
		req.Tools = make([]goopenai.Tool, len(options.Tools))
		for i, t := range options.Tools {
			req.Tools[i] = goopenai.Tool{
				Type: goopenai.ToolType(t.Type),
				Function: &goopenai.FunctionDefinition{
					Name:        t.Function.Name,
					Description: t.Function.Description,
					Parameters:  t.Function.Parameters,
				},
			}
		}
	}

	return req, options
}

// Chat implements provider.ChatModel.Chat.
func (m *ChatModel) Chat(ctx context.Context, messages []types.Message, opts ...provider.Option) (*types.ChatResponse, error) {
	req, options := m.prepareRequest(messages, opts)

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("minimax: no choices returned")
	}

	choice := resp.Choices[0]

	chatMsg := types.Message{
		Role:    types.RoleAssistant,
		Content: choice.Message.Content,
	}
	if len(choice.Message.ToolCalls) > 0 {
		chatMsg.ToolCalls = fromWireToolCalls(choice.Message.ToolCalls)
	}

	out := &types.ChatResponse{
		Message:      chatMsg,
		FinishReason: string(choice.FinishReason),
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if options.ReasoningSplit {
		out.Reasoning = choice.Message.ReasoningContent
	}
	return out, nil
}

// reasoningSplitTransport rewrites outgoing chat completion bodies to add
// the `reasoning_split` field the endpoint expects.
type reasoningSplitTransport struct {
	base http.RoundTripper
}

func (t *reasoningSplitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/chat/completions") && req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}

		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err == nil {
			payload["reasoning_split"] = true
			if rewritten, err := json.Marshal(payload); err == nil {
				raw = rewritten
			}
		}

		req.Body = io.NopCloser(bytes.NewReader(raw))
		req.ContentLength = int64(len(raw))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(raw)), nil
		}
	}
	return t.base.RoundTrip(req)
}

// withReasoningSplit wraps the provided HTTP client (or a default one) so
// every completion request carries the reasoning split flag.
func withReasoningSplit(client *http.Client) *http.Client {
	baseClient := client
	if baseClient == nil {
		baseClient = &http.Client{}
	}

	baseTransport := baseClient.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	clone := *baseClient
	clone.Transport = &reasoningSplitTransport{base: baseTransport}
	return &clone
}

func toWireToolCalls(tcs []types.ToolCall) []goopenai.ToolCall {
	res := make([]goopenai.ToolCall, len(tcs))
	for i, tc := range tcs {
		res[i] = goopenai.ToolCall{
			ID:   tc.ID,
			Type: goopenai.ToolType(tc.Type),
			Function: goopenai.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		}
	}
	return res
}

func fromWireToolCalls(tcs []goopenai.ToolCall) []types.ToolCall {
	res := make([]types.ToolCall, len(tcs))
	for i, tc := range tcs {
		res[i] = types.NewToolCall(tc.ID, tc.Function.Name, tc.Function.Arguments)
	}
	return res
}

// Ensure interface compliance
var _ provider.ChatModel = (*ChatModel)(nil)
