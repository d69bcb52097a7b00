/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaagent

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"chainguard.dev/thinktank/agents/executor/openaiexecutor"
	"chainguard.dev/thinktank/agents/promptbuilder"
	"chainguard.dev/thinktank/agents/submitresult"
	"chainguard.dev/thinktank/agents/toolcall"
)

// Agent is the interface for a configured meta-agent.
//   - Req must implement promptbuilder.Bindable.
//   - Resp is the structured response type.
//   - CB is the type passed to the tool provider.
type Agent[Req promptbuilder.Bindable, Resp, CB any] interface {
	// Execute runs the agent with the given request and tool callbacks.
	Execute(ctx context.Context, request Req, callbacks CB) (Resp, error)
}

// Provider names the API family serving a model.
type Provider string

const (
	Anthropic Provider = "anthropic"
	Google    Provider = "google"
	OpenAI    Provider = "openai"
)

// ProviderFor maps a model name to its provider by prefix.
func ProviderFor(model string) (Provider, error) {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "claude-"):
		return Anthropic, nil
	case strings.HasPrefix(m, "gemini-"):
		return Google, nil
	case openaiexecutor.IsModel(m):
		return OpenAI, nil
	default:
		return "", fmt.Errorf("unsupported model: %s (expected claude-*, gemini-*, gpt-* or o*)", model)
	}
}

// New creates a new meta-agent with the given configuration.
// The model's prefix selects the provider implementation.
func New[Req promptbuilder.Bindable, Resp, CB any](
	ctx context.Context,
	model string,
	config Config[Resp, CB],
) (Agent[Req, Resp, CB], error) {
	provider, err := ProviderFor(model)
	if err != nil {
		return nil, err
	}
	if config.UserPrompt == nil {
		return nil, errors.New("user prompt is required")
	}
	if config.Tools == nil {
		config.Tools = toolcall.ProviderFunc[Resp, CB](func(CB) map[string]toolcall.Tool[Resp] {
			return map[string]toolcall.Tool[Resp]{}
		})
	}
	key := config.Credentials.keyFor(provider)
	if key == "" {
		return nil, fmt.Errorf("model %s needs %s", model, config.Credentials.envFor(provider))
	}

	submit, err := submitresult.ToolForResponse[Resp]()
	if err != nil {
		return nil, fmt.Errorf("building submit_result tool: %w", err)
	}

	switch provider {
	case Anthropic:
		return newClaudeAgent[Req](key, model, config, submit)
	case Google:
		return newGoogleAgent[Req](ctx, key, model, config, submit)
	default:
		return newOpenAIAgent[Req](key, model, config, submit)
	}
}

// toolsFor merges submit into the configured tools unless a tool already
// claims its name.
func toolsFor[Resp, CB any](config Config[Resp, CB], submit toolcall.Tool[Resp], callbacks CB) map[string]toolcall.Tool[Resp] {
	tools := maps.Clone(config.Tools.Tools(callbacks))
	if tools == nil {
		tools = make(map[string]toolcall.Tool[Resp], 1)
	}
	if _, ok := tools[submit.Def.Name]; !ok {
		tools[submit.Def.Name] = submit
	}
	return tools
}
