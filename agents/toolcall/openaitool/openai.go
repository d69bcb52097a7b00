/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaitool adapts toolcall tools to OpenAI chat completion tools.
package openaitool

import (
	"context"
	"encoding/json"
	"fmt"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/params"
	"github.com/openai/openai-go"
)

// Metadata is a tool in the shape the OpenAI executor consumes.
type Metadata[Resp any] struct {
	Definition openai.ChatCompletionToolParam
	Handler    func(ctx context.Context, call openai.ChatCompletionMessageToolCall, trace *agenttrace.Trace[Resp], result *Resp) map[string]any
}

// Definition converts a tool definition to a function tool.
func Definition(def toolcall.Definition) openai.ChatCompletionToolParam {
	fn := openai.FunctionDefinitionParam{
		Name:       def.Name,
		Parameters: openai.FunctionParameters(def.JSONSchema()),
	}
	if def.Description != "" {
		fn.Description = openai.String(def.Description)
	}
	return openai.ChatCompletionToolParam{Function: fn}
}

// Call decodes the JSON arguments of a tool call.
func Call(tc openai.ChatCompletionMessageToolCall) (toolcall.ToolCall, error) {
	args := map[string]any{}
	if tc.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return toolcall.ToolCall{}, fmt.Errorf("failed to parse tool arguments: %w", err)
		}
	}
	return toolcall.ToolCall{ID: tc.ID, Name: tc.Function.Name, Args: args}, nil
}

// FromTool adapts a provider-independent tool.
func FromTool[Resp any](t toolcall.Tool[Resp]) Metadata[Resp] {
	return Metadata[Resp]{
		Definition: Definition(t.Def),
		Handler: func(ctx context.Context, tc openai.ChatCompletionMessageToolCall, trace *agenttrace.Trace[Resp], result *Resp) map[string]any {
			call, err := Call(tc)
			if err != nil {
				trace.BadToolCall(tc.ID, tc.Function.Name, map[string]any{"arguments": tc.Function.Arguments}, err)
				return params.Error("%v", err)
			}
			return t.Handler(ctx, call, trace, result)
		},
	}
}

// Map adapts every tool in tools.
func Map[Resp any](tools map[string]toolcall.Tool[Resp]) map[string]Metadata[Resp] {
	out := make(map[string]Metadata[Resp], len(tools))
	for name, t := range tools {
		out[name] = FromTool(t)
	}
	return out
}
