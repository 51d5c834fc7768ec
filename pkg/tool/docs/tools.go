package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"m2demo/pkg/tool"
)

// Character budgets for tool payloads, matching what the demo prompt was
// tuned against. Oversized sections are cut, not summarized.
const (
	tokensBudget   = 1200
	specBudget     = 1600
	guidanceBudget = 1600
)

// TokensArgs are the arguments for the get_design_tokens tool.
type TokensArgs struct {
	Category string `json:"category" description:"Token category to retrieve" enum:"colors,typography,spacing,shadows,border radius,breakpoints"`
}

// SpecArgs are the arguments for the get_component_spec tool.
type SpecArgs struct {
	Component string `json:"component" description:"Component name; e.g. Button"`
}

// GuidanceArgs are the arguments for the get_pattern_guidance tool.
type GuidanceArgs struct {
	Topic string `json:"topic" description:"Pattern topic to retrieve"`
}

type tokensPayload struct {
	Section string `json:"section"`
	Tokens  string `json:"tokens"`
}

type specPayload struct {
	Component string `json:"component"`
	Spec      string `json:"spec"`
}

type guidancePayload struct {
	Topic    string `json:"topic"`
	Guidance string `json:"guidance"`
}

// NewDesignTokens returns the design-token lookup tool.
func NewDesignTokens(lib *Library) tool.Tool {
	return tool.NewStruct(
		"get_design_tokens",
		"Fetch design-system tokens such as colors, typography, spacing, or shadows.",
		func(ctx context.Context, args TokensArgs) (string, error) {
			if key, body, ok := lib.tokens.Match(args.Category); ok {
				return encode(tokensPayload{Section: key, Tokens: truncate(body, tokensBudget)})
			}
			return encode(tokensPayload{
				Section: "not_found",
				Tokens:  notFound("section", args.Category, lib.tokens.Keys()),
			})
		})
}

// NewComponentSpec returns the component-spec lookup tool. Unlike the
// section tools it matches on heading prefixes, so "button" hits
// "## Button" but not components that merely mention buttons.
func NewComponentSpec(lib *Library) tool.Tool {
	return tool.NewStruct(
		"get_component_spec",
		"Return the spec for a UI component such as Button, Card, Input, Modal, or Alert.",
		func(ctx context.Context, args SpecArgs) (string, error) {
			normalized := strings.ToLower(strings.TrimSpace(args.Component))
			var available []string

			for _, block := range strings.Split(lib.components, "## ") {
				header, body, _ := strings.Cut(block, "\n")
				header = strings.TrimSpace(header)
				if header == "" || strings.HasPrefix(header, "#") {
					continue // preamble before the first component heading
				}
				available = append(available, header)
				if normalized != "" && strings.HasPrefix(strings.ToLower(header), normalized) {
					return encode(specPayload{
						Component: header,
						Spec:      truncate(strings.TrimSpace(body), specBudget),
					})
				}
			}

			return encode(specPayload{
				Component: args.Component,
				Spec:      notFound("component", args.Component, available),
			})
		})
}

// NewPatternGuidance returns the pattern-guidance lookup tool.
func NewPatternGuidance(lib *Library) tool.Tool {
	return tool.NewStruct(
		"get_pattern_guidance",
		"Look up development patterns and conventions (composition, naming, testing, etc.).",
		func(ctx context.Context, args GuidanceArgs) (string, error) {
			if key, body, ok := lib.patterns.MatchDeep(args.Topic); ok {
				return encode(guidancePayload{Topic: key, Guidance: truncate(body, guidanceBudget)})
			}
			return encode(guidancePayload{
				Topic:    args.Topic,
				Guidance: notFound("pattern", args.Topic, lib.patterns.Keys()),
			})
		})
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func notFound(kind, query string, available []string) string {
	return fmt.Sprintf("No %s matched %q. Available: %s", kind, query, strings.Join(available, ", "))
}
