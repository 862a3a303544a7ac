// Package planner builds the constrained generation prompt and parses the
// model response into a structured plan.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

// LLMPlanner implements the Planner port against the language-model gateway.
type LLMPlanner struct {
	llm ports.LLMClient
}

// New builds a planner over the gateway.
func New(llm ports.LLMClient) *LLMPlanner {
	return &LLMPlanner{llm: llm}
}

// GeneratePlan implements ports.Planner.
func (p *LLMPlanner) GeneratePlan(ctx context.Context, query string, tools []domain.Tool, cwd string) (domain.Plan, error) {
	prompt := BuildPrompt(query, tools, cwd)
	response, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("generate plan: %w", err)
	}
	return ParsePlan(response)
}

// BuildPrompt renders the deterministic, data-driven prompt: one labeled
// block per retrieved tool (non-empty fields only), followed by strict
// JSON-only instructions and the working directory as context.
func BuildPrompt(query string, tools []domain.Tool, cwd string) string {
	var docs strings.Builder
	for _, tool := range tools {
		fmt.Fprintf(&docs, "### %s\n", tool.Name)
		if tool.Description != "" {
			fmt.Fprintf(&docs, "  %s\n", tool.Description)
		}
		if tool.Synopsis != "" {
			fmt.Fprintf(&docs, "  Usage: %s\n", tool.Synopsis)
		}
		if tool.Flags != "" {
			fmt.Fprintf(&docs, "  Flags: %s\n", tool.Flags)
		}
		if tool.Examples != "" {
			fmt.Fprintf(&docs, "  Examples:\n%s\n", tool.Examples)
		}
		docs.WriteString("\n")
	}

	return fmt.Sprintf(`You are a Unix command line expert. Generate a shell command to accomplish the task.

AVAILABLE TOOLS:
%s
STRICT RULES:
1. Use ONLY tools and flags shown above. Do not invent flags.
2. If the task is impossible with these tools, set commands to an empty array.
3. Use simple, common patterns. Prefer find, grep, awk, sort, uniq, wc.
4. Always use relative paths from the current directory.

Current directory: %s

TASK: %s

Respond with ONLY this JSON, no other text:
{"commands": ["the command"], "explanation": "what it does", "warnings": [], "needs_confirmation": true}`,
		docs.String(), cwd, query)
}

// rawPlan mirrors the expected response shape with optional fields, so that
// defaulting stays in one place.
type rawPlan struct {
	Commands          []string `json:"commands"`
	Explanation       *string  `json:"explanation"`
	Warnings          []string `json:"warnings"`
	NeedsConfirmation *bool    `json:"needs_confirmation"`
}

// ParsePlan leniently parses a model response. It scans for the first "{"
// and last "}" and parses that substring, defending against incidental
// prose around the JSON object; when no brace pair exists the raw text is
// parsed directly. Anything still unparseable surfaces
// domain.ErrMalformedResponse with a preview of the offending text.
func ParsePlan(response string) (domain.Plan, error) {
	trimmed := strings.TrimSpace(response)

	candidate := trimmed
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		candidate = trimmed[start : end+1]
	}

	var raw rawPlan
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return domain.Plan{}, domain.MalformedResponse(trimmed)
	}

	plan := domain.Plan{
		Commands:          raw.Commands,
		Explanation:       "Execute the command(s)",
		Warnings:          raw.Warnings,
		NeedsConfirmation: true,
	}
	if plan.Commands == nil {
		plan.Commands = []string{}
	}
	if plan.Warnings == nil {
		plan.Warnings = []string{}
	}
	if raw.Explanation != nil {
		plan.Explanation = *raw.Explanation
	}
	if raw.NeedsConfirmation != nil {
		plan.NeedsConfirmation = *raw.NeedsConfirmation
	}
	return plan, nil
}

var _ ports.Planner = (*LLMPlanner)(nil)
