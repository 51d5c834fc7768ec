package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"m2demo/pkg/types"
)

// Tool represents a callable capability exposed to the model. Results are
// JSON-encoded strings; the conversation loop never inspects them.
type Tool interface {
	// Name returns the unique name of the tool.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// InputSchema returns the JSON schema for the argument object.
	InputSchema() map[string]any

	// Execute runs the tool with the decoded keyword arguments.
	Execute(ctx context.Context, input map[string]any) (string, error)
}

// Struct is a tool whose arguments are parsed into a typed record before
// execution. The JSON schema is generated from the record's fields, so the
// schema advertised to the model and the validation applied at the boundary
// cannot drift apart.
type Struct[T any] struct {
	name        string
	description string
	schema      map[string]any
	fn          func(context.Context, T) (string, error)
}

// NewStruct creates a typed tool; the schema is derived from T.
func NewStruct[T any](name, description string, fn func(context.Context, T) (string, error)) *Struct[T] {
	var zero T
	return &Struct[T]{
		name:        name,
		description: description,
		schema:      GenerateSchema(zero),
		fn:          fn,
	}
}

func (s *Struct[T]) Name() string                { return s.name }
func (s *Struct[T]) Description() string         { return s.description }
func (s *Struct[T]) InputSchema() map[string]any { return s.schema }

// Execute decodes input into T and runs the wrapped function.
func (s *Struct[T]) Execute(ctx context.Context, input map[string]any) (string, error) {
	var args T
	raw, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to marshal input for tool %s: %w", s.name, err)
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("failed to parse arguments for tool %s: %w", s.name, err)
	}
	return s.fn(ctx, args)
}

// ToDefinition converts a Tool into a types.ToolDefinition for providers.
func ToDefinition(t Tool) types.ToolDefinition {
	def := types.ToolDefinition{Type: "function"}
	def.Function.Name = t.Name()
	def.Function.Description = t.Description()
	def.Function.Parameters = t.InputSchema()
	return def
}
