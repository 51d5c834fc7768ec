package provider

import (
	"context"

	"m2demo/pkg/types"
)

// ChatOptions contains configurable parameters for chat generation.
type ChatOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Stop        []string
	Tools       []types.ToolDefinition

	// ReasoningSplit asks the endpoint to return the thinking segment
	// separately from the answer content instead of interleaving them.
	ReasoningSplit bool
}

// Option is a functional option for configuring ChatOptions.
type Option func(*ChatOptions)

func WithModel(m string) Option {
	return func(o *ChatOptions) {
		o.Model = m
	}
}

func WithTemperature(t float64) Option {
	return func(o *ChatOptions) {
		o.Temperature = t
	}
}

func WithMaxTokens(n int) Option {
	return func(o *ChatOptions) {
		o.MaxTokens = n
	}
}

func WithTools(tools []types.ToolDefinition) Option {
	return func(o *ChatOptions) {
		o.Tools = tools
	}
}

func WithReasoningSplit(v bool) Option {
	return func(o *ChatOptions) {
		o.ReasoningSplit = v
	}
}

// ChatModel defines the interface for interacting with chat LLMs.
// The demo loop is strictly sequential, so only blocking completion is
// part of the contract.
type ChatModel interface {
	// Name returns the provider name (e.g., "minimax", "gemini").
	Name() string

	// Chat sends a list of messages and returns a complete response.
	Chat(ctx context.Context, messages []types.Message, opts ...Option) (*types.ChatResponse, error)
}
