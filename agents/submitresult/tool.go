/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package submitresult provides a submit_result tool whose payload schema is
// reflected from the agent's response type. Calling it ends the
// conversation with the decoded payload.
package submitresult

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chainguard.dev/thinktank/agents/agenttrace"
	"chainguard.dev/thinktank/agents/toolcall"
	"chainguard.dev/thinktank/agents/toolcall/params"
	"github.com/chainguard-dev/clog"
)

// Tool builds the submit_result tool.
func Tool[Response any](opts Options[Response]) (toolcall.Tool[Response], error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return toolcall.Tool[Response]{}, err
	}
	payload, err := opts.payloadSchema()
	if err != nil {
		return toolcall.Tool[Response]{}, fmt.Errorf("convert payload schema: %w", err)
	}

	handler := func(ctx context.Context, call toolcall.ToolCall, trace *agenttrace.Trace[Response], result *Response) map[string]any {
		reasoning, errResp := toolcall.Param[string](call, trace, "reasoning")
		if errResp != nil {
			return errResp
		}
		raw, errResp := toolcall.Param[map[string]any](call, trace, opts.PayloadFieldName)
		if errResp != nil {
			return errResp
		}

		clog.FromContext(ctx).With("reasoning", reasoning).Info("Submitting result")
		tc := trace.StartToolCall(call.ID, call.Name, call.Args)

		b, err := json.Marshal(raw)
		if err != nil {
			tc.Complete(nil, err)
			return params.Error("failed to marshal payload: %v", err)
		}
		dest := newResponse[Response]()
		if err := json.Unmarshal(b, dest); err != nil {
			tc.Complete(nil, err)
			return params.Error("failed to unmarshal payload: %v", err)
		}
		if v, ok := dest.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				tc.Complete(nil, err)
				return params.Error("invalid payload: %v", err)
			}
		}

		*result = fromDecoded[Response](dest)
		success := map[string]any{"success": true, "message": opts.SuccessMessage}
		tc.Complete(success, nil)
		return success
	}

	return toolcall.Tool[Response]{
		Def: toolcall.Definition{
			Name:        opts.ToolName,
			Description: opts.Description,
			Parameters: []toolcall.Parameter{{
				Name:        "reasoning",
				Type:        "string",
				Description: "Explain why you are confident this result is complete and accurate.",
				Required:    true,
			}, {
				Name:     opts.PayloadFieldName,
				Required: true,
				Schema:   payload,
			}},
		},
		Handler: handler,
	}, nil
}

// ToolForResponse builds the tool from the submitresult tag on Response.
func ToolForResponse[Response any]() (toolcall.Tool[Response], error) {
	return Tool(OptionsForResponse[Response]())
}

// ErrNotSubmitted is returned by executors when a model ends its turn
// without a usable answer.
var ErrNotSubmitted = errors.New("model finished without submitting a result")
