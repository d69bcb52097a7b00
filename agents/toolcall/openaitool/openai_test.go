/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaitool_test

import (
	"context"
	"testing"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/openaitool"
	"github.com/openai/openai-go"
)

func TestFromTool(t *testing.T) {
	tool := toolcall.Tool[string]{
		Def: toolcall.Definition{
			Name:        "market_research",
			Description: "Market trends",
			Parameters: []toolcall.Parameter{
				{Name: "query", Type: "string", Description: "Search query", Required: true},
			},
		},
		Handler: func(_ context.Context, call toolcall.ToolCall, _ *agenttrace.Trace[string], _ *string) map[string]any {
			return map[string]any{"query": call.Args["query"]}
		},
	}
	meta := openaitool.FromTool(tool)

	if got := meta.Definition.Function.Name; got != "market_research" {
		t.Errorf("Name: got = %q, wanted = %q", got, "market_research")
	}
	if got := meta.Definition.Function.Parameters["type"]; got != "object" {
		t.Errorf("Parameters.type: got = %v, wanted = object", got)
	}

	trace := agenttrace.ByCode[string]().NewTrace(context.Background(), "p")
	var result string

	resp := meta.Handler(context.Background(), openai.ChatCompletionMessageToolCall{
		ID:       "call_1",
		Function: openai.ChatCompletionMessageToolCallFunction{Name: "market_research", Arguments: `{"query":"edtech"}`},
	}, trace, &result)
	if resp["query"] != "edtech" {
		t.Errorf("Handler: got = %v, wanted query echoed", resp)
	}

	resp = meta.Handler(context.Background(), openai.ChatCompletionMessageToolCall{
		ID:       "call_2",
		Function: openai.ChatCompletionMessageToolCallFunction{Name: "market_research", Arguments: `{`},
	}, trace, &result)
	if _, ok := resp["error"]; !ok {
		t.Errorf("Handler(bad args): got = %v, wanted error", resp)
	}
}
