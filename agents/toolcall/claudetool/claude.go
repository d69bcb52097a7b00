/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudetool

import (
	"context"
	"encoding/json"
	"fmt"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/params"
	"github.com/anthropics/anthropic-sdk-go"
)

// Metadata is a tool in the shape the Claude executor consumes.
type Metadata[Resp any] struct {
	Definition anthropic.ToolParam
	Handler    func(ctx context.Context, toolUse anthropic.ToolUseBlock, trace *agenttrace.Trace[Resp], result *Resp) map[string]any
}

// Definition converts a tool definition to an Anthropic tool param.
func Definition(def toolcall.Definition) anthropic.ToolParam {
	s := def.JSONSchema()
	tp := anthropic.ToolParam{
		Name: def.Name,
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: s["properties"],
			Required:   s["required"].([]string),
		},
	}
	if def.Description != "" {
		tp.Description = anthropic.String(def.Description)
	}
	return tp
}

// Call decodes a tool_use block.
func Call(toolUse anthropic.ToolUseBlock) (toolcall.ToolCall, error) {
	args := map[string]any{}
	if len(toolUse.Input) > 0 {
		if err := json.Unmarshal(toolUse.Input, &args); err != nil {
			return toolcall.ToolCall{}, fmt.Errorf("failed to parse tool input: %w", err)
		}
	}
	return toolcall.ToolCall{ID: toolUse.ID, Name: toolUse.Name, Args: args}, nil
}

// FromTool adapts a provider-independent tool.
func FromTool[Resp any](t toolcall.Tool[Resp]) Metadata[Resp] {
	return Metadata[Resp]{
		Definition: Definition(t.Def),
		Handler: func(ctx context.Context, toolUse anthropic.ToolUseBlock, trace *agenttrace.Trace[Resp], result *Resp) map[string]any {
			call, err := Call(toolUse)
			if err != nil {
				trace.BadToolCall(toolUse.ID, toolUse.Name, map[string]any{"input": string(toolUse.Input)}, err)
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
