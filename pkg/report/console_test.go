package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"m2demo/pkg/agent"
	"m2demo/pkg/cost"
	"m2demo/pkg/types"
)

func TestSummarize(t *testing.T) {
	short := Summarize("get_design_tokens", "small payload", 220)
	assert.Equal(t, "get_design_tokens: small payload", short)

	long := Summarize("get_component_spec", strings.Repeat("x", 300), 220)
	assert.True(t, strings.HasSuffix(long, " ..."))
	// tool name + ": " + 220 chars + " ..."
	assert.Len(t, long, len("get_component_spec: ")+220+4)
}

func TestSummarize_TrimsTrailingSpaceAtCut(t *testing.T) {
	payload := strings.Repeat("ab ", 100)
	got := Summarize("t", payload, 6)
	assert.Equal(t, "t: ab ab ...", got)
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four", 9)
	assert.Equal(t, "one two\nthree\nfour", got)

	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 9)
	}

	assert.Equal(t, "", wrap("   ", 10))
	assert.Equal(t, "collapsed into one", wrap("collapsed\n\n  into\tone", 80))

	// A single word longer than the width stays on its own line.
	assert.Equal(t, "abcdefghij", wrap("abcdefghij", 4))
}

func TestConsole_EventOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf)

	c.Banner("20260829-101500-ab12cd34", "context_package", "MiniMax-M2")
	c.StepStart(1)
	c.Thinking("I should fetch the tokens first.")
	c.ToolCall("get_design_tokens", map[string]any{"category": "colors"})
	c.ToolResult("get_design_tokens", `{"section":"colors"}`)
	c.FinalContent("Brief complete.")
	c.LogSaved("demo_logs/run.jsonl")

	out := buf.String()
	assert.Contains(t, out, "MiniMax-M2 Interleaved Thinking Demo")
	assert.Contains(t, out, "Scenario: context_package | Run ID: 20260829-101500-ab12cd34")
	assert.Contains(t, out, "── Step 1 ──")
	assert.Contains(t, out, "Thought:")
	assert.Contains(t, out, "I should fetch the tokens first.")
	assert.Contains(t, out, `Tool Call ▶ get_design_tokens {"category":"colors"}`)
	assert.Contains(t, out, "Tool Result ⬅")
	assert.Contains(t, out, `get_design_tokens: {"section":"colors"}`)
	assert.Contains(t, out, "Final Response")
	assert.Contains(t, out, "Brief complete.")
	assert.Contains(t, out, "Log saved to demo_logs/run.jsonl")
}

func TestConsole_Summary(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf)

	c.Summary(&agent.Result{
		Usage: types.Usage{PromptTokens: 2840, CompletionTokens: 412, TotalTokens: 3252},
		Cost:  cost.Calc(cost.DefaultRates, 2840, 412),
		RunState: agent.RunState{
			Step:             3,
			ToolInvocations:  3,
			ThinkingSegments: 3,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Run Summary")
	assert.Contains(t, out, "• Steps: 3")
	assert.Contains(t, out, "• Tool calls: 3")
	assert.Contains(t, out, "• Thinking segments: 3")
	assert.Contains(t, out, "Prompt tokens: 2840 ($0.000852)")
	assert.Contains(t, out, "Completion tokens: 412 ($0.000494)")
	assert.Contains(t, out, "Estimated total: $0.001346")
}

func TestQuietIsReporter(t *testing.T) {
	var r agent.Reporter = Quiet()
	r.StepStart(1)
	r.Thinking("silent")
	r.FinalContent("silent")
}
