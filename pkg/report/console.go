// Package report renders the demo's colored console output: the banner,
// per-step events, and the closing cost summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"m2demo/pkg/agent"
)

const (
	wrapWidth     = 88
	previewBudget = 220
)

// Console writes run events to a writer with ANSI colors.
type Console struct {
	out io.Writer

	headline *color.Color
	accent   *color.Color
	thought  *color.Color
	toolCall *color.Color
	toolRes  *color.Color
	body     *color.Color
	bullet   *color.Color
	meta     *color.Color
}

// New returns a Console writing to stdout.
func New() *Console {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a Console writing to w; used by tests.
func NewWithWriter(w io.Writer) *Console {
	return &Console{
		out:      w,
		headline: color.New(color.FgCyan, color.Bold),
		accent:   color.New(color.FgHiBlue),
		thought:  color.New(color.FgHiYellow),
		toolCall: color.New(color.FgHiGreen),
		toolRes:  color.New(color.FgGreen),
		body:     color.New(color.FgWhite),
		bullet:   color.New(color.FgHiWhite),
		meta:     color.New(color.FgMagenta),
	}
}

// Banner prints the run header.
func (c *Console) Banner(runID, scenarioName, model string) {
	rule := strings.Repeat("=", 90)
	fmt.Fprintln(c.out, rule)
	c.headline.Fprintln(c.out, model+" Interleaved Thinking Demo")
	c.body.Fprintln(c.out, "Agent-native • 10B activated params • 8% of Claude Sonnet price • "+
		"2x faster loops • Front-end & game dev specialist")
	c.toolCall.Fprintln(c.out, "Pricing: input $0.3/MTok | output $1.2/MTok | starter plan $10/mo "+
		"(10% of Claude Code Max).")
	c.accent.Fprintln(c.out, "Brief focus: interleaved thinking, tool orchestration, Mini price / max performance.")
	c.meta.Fprintf(c.out, "Scenario: %s | Run ID: %s\n", scenarioName, runID)
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out)
}

// StepStart implements agent.Reporter.
func (c *Console) StepStart(step int) {
	c.accent.Fprintf(c.out, "\n── Step %d ────────────────────────────────────────────────\n", step)
}

// Thinking implements agent.Reporter.
func (c *Console) Thinking(text string) {
	c.thought.Fprintln(c.out, "Thought:")
	c.body.Fprintln(c.out, wrap(text, wrapWidth))
}

// ToolCall implements agent.Reporter.
func (c *Console) ToolCall(name string, args map[string]any) {
	encoded, err := json.Marshal(args)
	if err != nil {
		encoded = []byte("{}")
	}
	c.toolCall.Fprintf(c.out, "Tool Call ▶ %s %s\n", name, encoded)
}

// ToolResult implements agent.Reporter.
func (c *Console) ToolResult(name, result string) {
	c.toolRes.Fprintln(c.out, "Tool Result ⬅")
	c.body.Fprintln(c.out, wrap(Summarize(name, result, previewBudget), wrapWidth))
}

// FinalContent implements agent.Reporter.
func (c *Console) FinalContent(content string) {
	c.headline.Fprintln(c.out, "\nFinal Response")
	c.body.Fprintln(c.out, wrap(content, wrapWidth))
}

// Summary prints the closing counters and cost estimate.
func (c *Console) Summary(res *agent.Result) {
	c.headline.Fprintln(c.out, "\nRun Summary")
	lines := []string{
		fmt.Sprintf("Steps: %d", res.RunState.Step),
		fmt.Sprintf("Tool calls: %d", res.RunState.ToolInvocations),
		fmt.Sprintf("Thinking segments: %d", res.RunState.ThinkingSegments),
		fmt.Sprintf("Prompt tokens: %d ($%.6f)", res.Usage.PromptTokens, res.Cost.Input),
		fmt.Sprintf("Completion tokens: %d ($%.6f)", res.Usage.CompletionTokens, res.Cost.Output),
		fmt.Sprintf("Estimated total: $%.6f (≈8%% Claude Sonnet 4.5)", res.Cost.Total),
		"Differentiators: interleaved reasoning, rapid tool chaining, 10B activated params.",
		"Use this cost/latency profile to benchmark against GLM 4.6, K2 Thinking, and Claude Sonnet 4.5.",
	}
	for _, line := range lines {
		c.bullet.Fprintln(c.out, "• "+line)
	}
}

// LogSaved prints the transcript location.
func (c *Console) LogSaved(path string) {
	c.accent.Fprintf(c.out, "\nLog saved to %s\n", path)
}

// Summarize renders a one-line preview of a tool result, cut to maxChars.
func Summarize(toolName, payload string, maxChars int) string {
	preview := payload
	runes := []rune(payload)
	if len(runes) > maxChars {
		preview = strings.TrimRight(string(runes[:maxChars]), " ") + " ..."
	}
	return toolName + ": " + preview
}

// wrap fills text to the given width, collapsing runs of whitespace the
// way the thinking segments arrive from the endpoint.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len([]rune(word))
			continue
		}
		wordLen := len([]rune(word))
		if lineLen+1+wordLen > width {
			b.WriteString("\n")
			b.WriteString(word)
			lineLen = wordLen
			continue
		}
		b.WriteString(" ")
		b.WriteString(word)
		lineLen += 1 + wordLen
	}
	return b.String()
}

// Ensure interface compliance
var _ agent.Reporter = (*Console)(nil)

// Quiet discards all events but still satisfies agent.Reporter; handy for
// tests that only care about the loop.
func Quiet() *Console {
	return NewWithWriter(io.Discard)
}
