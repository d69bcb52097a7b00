/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/toolcall"
)

// Config defines the configuration for a meta-agent instance.
//   - Resp is the structured response type returned by the agent.
//   - CB is the type passed to the tool provider.
type Config[Resp, CB any] struct {
	// SystemInstructions is the system prompt that defines the agent's role and behavior.
	SystemInstructions *promptbuilder.Prompt

	// UserPrompt is the template for formatting the user's request.
	// The Req type is bound to this template via its Bind method.
	UserPrompt *promptbuilder.Prompt

	// Tools provides the tool definitions for this agent. A submit_result
	// tool reflected from Resp is always added.
	Tools toolcall.ToolProvider[Resp, CB]

	// Credentials holds an API key per provider. Only the key for the
	// selected model's provider is required.
	Credentials Credentials

	// Temperature overrides the provider default when non-nil.
	Temperature *float64
}

// Credentials are provider API keys.
type Credentials struct {
	AnthropicAPIKey string
	GeminiAPIKey    string
	OpenAIAPIKey    string
}

func (c Credentials) keyFor(p Provider) string {
	switch p {
	case Anthropic:
		return c.AnthropicAPIKey
	case Google:
		return c.GeminiAPIKey
	case OpenAI:
		return c.OpenAIAPIKey
	}
	return ""
}

func (c Credentials) envFor(p Provider) string {
	switch p {
	case Anthropic:
		return "ANTHROPIC_API_KEY"
	case Google:
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}
