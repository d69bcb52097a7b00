/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall/params"
)

// ToolCall is a provider-independent tool invocation.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Definition describes a tool to the model.
type Definition struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Parameter describes one tool argument.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean", "number", "object"
	Description string
	Required    bool
	// Schema, when set, is used verbatim instead of Type and Description.
	Schema map[string]any
}

// JSONSchema renders the parameters as a JSON schema object.
func (d Definition) JSONSchema() map[string]any {
	props := make(map[string]any, len(d.Parameters))
	required := []string{}
	for _, p := range d.Parameters {
		props[p.Name] = p.schema()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func (p Parameter) schema() map[string]any {
	if p.Schema != nil {
		return p.Schema
	}
	return map[string]any{
		"type":        p.Type,
		"description": p.Description,
	}
}

// Tool pairs a definition with a handler usable from any provider. The
// handler's return value is sent back to the model as the tool result.
// Setting *result to a non-zero value ends the conversation with it.
type Tool[Resp any] struct {
	Def     Definition
	Handler func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp], result *Resp) map[string]any
}

type badCallRecorder interface {
	BadToolCall(id, name string, params map[string]any, err error)
}

// Param extracts a required argument. On failure it records a bad tool
// call and returns the error response for the model.
func Param[T any](call ToolCall, trace badCallRecorder, name string) (T, map[string]any) {
	v, err := params.Extract[T](call.Args, name)
	if err != nil {
		trace.BadToolCall(call.ID, call.Name, call.Args, fmt.Errorf("missing %s parameter", name))
		return v, params.Error("%s", err)
	}
	return v, nil
}

// OptionalParam extracts an optional argument, falling back to def.
func OptionalParam[T any](call ToolCall, name string, def T) (T, map[string]any) {
	v, err := params.ExtractOptional(call.Args, name, def)
	if err != nil {
		return v, params.Error("%s", err)
	}
	return v, nil
}
