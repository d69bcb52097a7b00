/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googletool

import (
	"context"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"google.golang.org/genai"
)

// Metadata is a tool in the shape the Gemini executor consumes.
type Metadata[Resp any] struct {
	Definition *genai.FunctionDeclaration
	Handler    func(ctx context.Context, call *genai.FunctionCall, trace *agenttrace.Trace[Resp], result *Resp) *genai.FunctionResponse
}

var schemaTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
}

// Declaration converts a tool definition. Definitions with raw parameter
// schemas are passed through as JSON schema.
func Declaration(def toolcall.Definition) *genai.FunctionDeclaration {
	fd := &genai.FunctionDeclaration{
		Name:        def.Name,
		Description: def.Description,
	}
	for _, p := range def.Parameters {
		if p.Schema != nil {
			fd.ParametersJsonSchema = def.JSONSchema()
			return fd
		}
	}

	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(def.Parameters)),
	}
	for _, p := range def.Parameters {
		s.Properties[p.Name] = &genai.Schema{
			Type:        schemaTypes[p.Type],
			Description: p.Description,
		}
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	fd.Parameters = s
	return fd
}

// FromTool adapts a provider-independent tool.
func FromTool[Resp any](t toolcall.Tool[Resp]) Metadata[Resp] {
	return Metadata[Resp]{
		Definition: Declaration(t.Def),
		Handler: func(ctx context.Context, call *genai.FunctionCall, trace *agenttrace.Trace[Resp], result *Resp) *genai.FunctionResponse {
			args := call.Args
			if args == nil {
				args = map[string]any{}
			}
			resp := t.Handler(ctx, toolcall.ToolCall{ID: call.ID, Name: call.Name, Args: args}, trace, result)
			return &genai.FunctionResponse{ID: call.ID, Name: call.Name, Response: resp}
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
