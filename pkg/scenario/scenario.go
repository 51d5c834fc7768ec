// Package scenario enumerates the canned demo prompts.
package scenario

import (
	"fmt"
	"strings"

	"m2demo/pkg/prompt"
)

// Scenario is one selectable demo run: a name and the user prompt that
// seeds the conversation.
type Scenario struct {
	Name       string
	UserPrompt prompt.Template

	// Offline scenarios run against the scripted provider and need no
	// credentials.
	Offline bool
}

var systemPrompt = prompt.NewTemplate(
	"You are {{model}} running in interleaved mode. Think after every tool result, adjust your " +
		"plan, and keep reasoning transparent. If you call multiple tools, clearly integrate their " +
		"outputs before responding.")

// order is the listing order; Default is the first entry.
var order = []string{"context_package", "frontend_showcase", "offline"}

var scenarios = map[string]Scenario{
	"context_package": {
		Name: "context_package",
		UserPrompt: prompt.NewTemplate(
			"You are the {{model}} coding assistant embedded in a front-end system design review. " +
				"Produce a crisp brief for the design system team that highlights: (1) critical design " +
				"tokens, (2) the Button implementation contract, and (3) one reusable development pattern " +
				"to protect. Use the provided tools after every thought instead of guessing. The audience " +
				"cares about interleaved reasoning efficiency, so weave in how each artifact supports fast " +
				"front-end iteration."),
	},
	"frontend_showcase": {
		Name: "frontend_showcase",
		UserPrompt: prompt.NewTemplate(
			"{{model}} is pair-programming on a front-end build. Analyze the available documents, " +
				"select the most relevant tokens, component specs, and patterns, and draft an action plan " +
				"for shipping a polished UI section today. Explicitly call out how interleaved thinking cut " +
				"down redundant work and why this model is ideal for UI-heavy workflows."),
	},
	"offline": {
		Name: "offline",
		UserPrompt: prompt.NewTemplate(
			"Dry run without credentials: walk the scripted conversation, exercising each lookup " +
				"tool once, and summarize what the transcript demonstrates about interleaved thinking."),
		Offline: true,
	},
}

// Default is the scenario used when none is selected.
const Default = "context_package"

// Get returns the named scenario, failing with the available options.
func Get(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q (options: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names returns all scenario names in listing order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// SystemPrompt renders the shared system prompt for the given model name.
func SystemPrompt(model string) string {
	return systemPrompt.Render(map[string]any{"model": model})
}
