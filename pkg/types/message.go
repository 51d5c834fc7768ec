package types

// Role identifies who authored a message in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall represents a request from the model to call a specific function.
type ToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // usually "function"
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"` // JSON string arguments
	} `json:"function"`
}

// NewToolCall builds a function tool call. Mostly useful in tests and
// scripted providers; live providers convert from their own wire types.
func NewToolCall(id, name, arguments string) ToolCall {
	tc := ToolCall{ID: id, Type: "function"}
	tc.Function.Name = name
	tc.Function.Arguments = arguments
	return tc
}

// ToolDefinition describes a tool available to the model.
// It matches the OpenAI tools schema.
type ToolDefinition struct {
	Type     string `json:"type"` // "function"
	Function struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Parameters  any    `json:"parameters"` // JSON Schema
	} `json:"function"`
}

// Usage represents token usage statistics for one completion request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Message is a single chat turn. Once appended to a conversation the
// message is treated as immutable.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`         // Optional: author name
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // For RoleAssistant: tools the model wants to call
	ToolCallID string     `json:"tool_call_id,omitempty"` // For RoleTool: the ID of the call this message responds to
}

// ChatResponse represents the full response from a ChatModel.
//
// Reasoning carries the separated thinking segment when the request asked
// for a reasoning split and the endpoint produced one. Providers that
// cannot separate reasoning leave it empty; when an endpoint returns
// several segments only the first is surfaced.
type ChatResponse struct {
	Message      Message
	Reasoning    string
	FinishReason string // stop, length, tool_calls, content_filter
	Usage        Usage
}
