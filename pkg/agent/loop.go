// Package agent drives the interleaved-thinking conversation loop: issue a
// completion request, surface the thinking segment, execute any tool calls,
// feed results back, and repeat until a turn produces no tool calls.
package agent

import (
	"context"
	"errors"
	"fmt"

	"m2demo/pkg/cost"
	"m2demo/pkg/log"
	"m2demo/pkg/parser"
	"m2demo/pkg/provider"
	"m2demo/pkg/tool"
	"m2demo/pkg/transcript"
	"m2demo/pkg/types"
)

// State is the loop's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
	StateExecutingTools
	StateTerminal
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateExecutingTools:
		return "executing_tools"
	case StateTerminal:
		return "terminal"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrMaxTurns is returned when the model is still requesting tools after
// the configured turn limit. Setting MaxTurns to 0 disables the guard.
var ErrMaxTurns = errors.New("turn limit reached with tool calls still pending")

// RunState holds the per-run counters. All are monotonically
// non-decreasing for the lifetime of one run.
type RunState struct {
	Step             int
	ToolInvocations  int
	ThinkingSegments int
}

// Reporter receives loop events for console rendering. Implementations
// must not fail; presentation never aborts a run.
type Reporter interface {
	StepStart(step int)
	Thinking(text string)
	ToolCall(name string, args map[string]any)
	ToolResult(name, result string)
	FinalContent(content string)
}

type nopReporter struct{}

func (nopReporter) StepStart(int)                   {}
func (nopReporter) Thinking(string)                 {}
func (nopReporter) ToolCall(string, map[string]any) {}
func (nopReporter) ToolResult(string, string)       {}
func (nopReporter) FinalContent(string)             {}

// Config describes how a Loop is assembled.
type Config struct {
	Provider   provider.ChatModel
	Registry   *tool.Registry
	Transcript transcript.Writer
	Reporter   Reporter
	Logger     *log.Logger

	// Model overrides the provider's default model when non-empty.
	Model string

	// MaxTurns bounds the loop; 0 disables the guard.
	MaxTurns int

	// Rates for the cost summary; zero value means cost.DefaultRates.
	Rates cost.Rates
}

// Loop owns one run's message history and counters and drives the
// turn-based exchange. A Loop is single-use: Run may be called once.
type Loop struct {
	provider   provider.ChatModel
	registry   *tool.Registry
	transcript transcript.Writer
	reporter   Reporter
	logger     *log.Logger
	model      string
	maxTurns   int
	rates      cost.Rates

	state   State
	history *History
}

// Result is what a completed run yields.
type Result struct {
	FinalContent string
	Usage        types.Usage
	Cost         cost.Breakdown
	RunState     RunState
}

// New builds a Loop and wires defaults.
func New(cfg Config) (*Loop, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	if cfg.Transcript == nil {
		return nil, fmt.Errorf("transcript writer is required")
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	rates := cfg.Rates
	if rates == (cost.Rates{}) {
		rates = cost.DefaultRates
	}

	return &Loop{
		provider:   cfg.Provider,
		registry:   cfg.Registry,
		transcript: cfg.Transcript,
		reporter:   reporter,
		logger:     logger,
		model:      cfg.Model,
		maxTurns:   cfg.MaxTurns,
		rates:      rates,
	}, nil
}

// State reports the loop's current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// History returns a copy of the run's conversation so far. Empty before
// Run is called.
func (l *Loop) History() []types.Message {
	if l.history == nil {
		return nil
	}
	return l.history.Messages()
}

// Run executes the conversation seeded with the given prompts until a turn
// yields no tool calls. Any failure is fatal: no retry, no rollback, and
// no completion record for the run.
func (l *Loop) Run(ctx context.Context, systemPrompt, userPrompt string) (*Result, error) {
	history := NewHistory(systemPrompt, userPrompt)
	l.history = history
	defs := l.registry.Definitions()
	rs := RunState{}

	for {
		if l.maxTurns > 0 && rs.Step >= l.maxTurns {
			l.state = StateFailed
			return nil, fmt.Errorf("%w after %d turns", ErrMaxTurns, rs.Step)
		}
		rs.Step++
		l.reporter.StepStart(rs.Step)

		l.state = StateAwaitingResponse
		l.logger.Debug("completion request",
			"provider", l.provider.Name(),
			"step", rs.Step,
			"messages", history.Len(),
		)

		opts := []provider.Option{
			provider.WithTools(defs),
			provider.WithReasoningSplit(true),
		}
		if l.model != "" {
			opts = append(opts, provider.WithModel(l.model))
		}

		resp, err := l.provider.Chat(ctx, history.Messages(), opts...)
		if err != nil {
			l.state = StateFailed
			return nil, fmt.Errorf("completion request failed on step %d: %w", rs.Step, err)
		}

		toolCalls := resp.Message.ToolCalls

		// The assistant record is written unconditionally, even when the
		// turn carried neither content nor tool calls.
		if err := l.transcript.Write(transcript.Record{
			Step:      rs.Step,
			Type:      transcript.KindAssistant,
			Thinking:  resp.Reasoning,
			Content:   resp.Message.Content,
			ToolCalls: toolCalls,
		}); err != nil {
			l.state = StateFailed
			return nil, err
		}

		assistant := types.Message{
			Role:    types.RoleAssistant,
			Content: resp.Message.Content,
		}
		if len(toolCalls) > 0 {
			assistant.ToolCalls = toolCalls
		}
		history.Append(assistant)

		if resp.Reasoning != "" {
			rs.ThinkingSegments++
			l.reporter.Thinking(resp.Reasoning)
		}

		if len(toolCalls) > 0 {
			l.state = StateExecutingTools
			if err := l.executeTools(ctx, history, &rs, toolCalls); err != nil {
				l.state = StateFailed
				return nil, err
			}
			continue
		}

		// Terminal turn: no tool calls.
		if resp.Message.Content != "" {
			l.reporter.FinalContent(resp.Message.Content)
		}

		usage := resp.Usage
		if err := l.transcript.Write(transcript.Record{
			Step:    rs.Step,
			Type:    transcript.KindCompletion,
			Content: resp.Message.Content,
			Usage:   &usage,
		}); err != nil {
			l.state = StateFailed
			return nil, err
		}

		l.state = StateTerminal
		l.logger.Info("run complete",
			"steps", rs.Step,
			"tool_calls", rs.ToolInvocations,
			"thinking_segments", rs.ThinkingSegments,
		)

		return &Result{
			FinalContent: resp.Message.Content,
			Usage:        usage,
			Cost:         cost.Calc(l.rates, usage.PromptTokens, usage.CompletionTokens),
			RunState:     rs,
		}, nil
	}
}

// executeTools runs each tool call synchronously, in response order,
// appending one tool message per call. Any failure is fatal to the run.
func (l *Loop) executeTools(ctx context.Context, history *History, rs *RunState, calls []types.ToolCall) error {
	for _, tc := range calls {
		rs.ToolInvocations++
		name := tc.Function.Name

		args, err := parser.Arguments(tc.Function.Arguments)
		if err != nil {
			return fmt.Errorf("tool %s: %w", name, err)
		}
		l.reporter.ToolCall(name, args)

		t, err := l.registry.Get(name)
		if err != nil {
			return fmt.Errorf("no handler registered for tool %s: %w", name, err)
		}

		l.logger.Debug("tool call", "tool", name, "call_id", tc.ID)
		result, err := t.Execute(ctx, args)
		if err != nil {
			return fmt.Errorf("tool %s failed: %w", name, err)
		}

		history.Append(types.Message{
			Role:       types.RoleTool,
			ToolCallID: tc.ID,
			Content:    result,
		})

		if err := l.transcript.Write(transcript.Record{
			Step:   rs.Step,
			Type:   transcript.KindToolResult,
			Tool:   name,
			Result: result,
		}); err != nil {
			return err
		}
		l.reporter.ToolResult(name, result)
	}
	return nil
}
