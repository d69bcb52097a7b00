/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package submitresult_test

import (
	"context"
	"errors"
	"testing"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/submitresult"
	"chainguard.dev/thinktank/agents/toolcall"
)

type stageOutput struct {
	_       struct{} `submitresult:"description=Submit the stage output,payload=output,success=Thanks"`
	Content string   `json:"content" jsonschema:"required"`
}

func (s *stageOutput) Validate() error {
	if s.Content == "" {
		return errors.New("content is empty")
	}
	return nil
}

func TestOptionsForResponse(t *testing.T) {
	o := submitresult.OptionsForResponse[*stageOutput]()
	if o.Description != "Submit the stage output" || o.PayloadFieldName != "output" || o.SuccessMessage != "Thanks" {
		t.Errorf("OptionsForResponse(): got = %+v", o)
	}
}

func TestToolForResponse(t *testing.T) {
	tool, err := submitresult.ToolForResponse[*stageOutput]()
	if err != nil {
		t.Fatalf("ToolForResponse() error = %v", err)
	}
	if tool.Def.Name != "submit_result" {
		t.Errorf("Name: got = %q, wanted = submit_result", tool.Def.Name)
	}
	schema := tool.Def.JSONSchema()
	if req := schema["required"].([]string); len(req) != 2 || req[1] != "output" {
		t.Errorf("required: got = %v, wanted = [reasoning output]", req)
	}

	ctx := context.Background()
	trace := agenttrace.ByCode[*stageOutput]().NewTrace(ctx, "p")

	tests := []struct {
		name    string
		args    map[string]any
		wantSet bool
	}{{
		name: "missing reasoning",
		args: map[string]any{"output": map[string]any{"content": "x"}},
	}, {
		name: "fails validation",
		args: map[string]any{"reasoning": "done", "output": map[string]any{"content": ""}},
	}, {
		name:    "submitted",
		args:    map[string]any{"reasoning": "done", "output": map[string]any{"content": "# Report"}},
		wantSet: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result *stageOutput
			resp := tool.Handler(ctx, toolcall.ToolCall{ID: "1", Name: "submit_result", Args: tt.args}, trace, &result)
			if got := result != nil; got != tt.wantSet {
				t.Fatalf("result set: got = %v, wanted = %v (resp = %v)", got, tt.wantSet, resp)
			}
			if tt.wantSet {
				if result.Content != "# Report" || resp["success"] != true {
					t.Errorf("submitted: got = (%+v, %v)", result, resp)
				}
			} else if _, ok := resp["error"]; !ok {
				t.Errorf("response: got = %v, wanted error", resp)
			}
		})
	}
}
