/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor runs a tool-using conversation against the
// Anthropic Messages API until the model submits a result or answers in
// plain text.
//
// # Basic Usage
//
//	client := anthropic.NewClient(option.WithAPIKey(key))
//
//	exec, err := claudeexecutor.New[*crew.Request, *crew.StageResult](
//	    client,
//	    prompt,
//	    claudeexecutor.WithSystemInstructions[*crew.Request, *crew.StageResult](system),
//	)
//	if err != nil {
//	    return nil, err
//	}
//
//	tools := claudetool.Map(provider.Tools(session))
//	out, err := exec.Execute(ctx, request, tools)
//
// Responses are streamed and accumulated. Transient API failures are
// retried with backoff. A tool handler that sets the result pointer ends
// the conversation; otherwise the final text is decoded with result.Parse.
//
// # Extended Thinking
//
// WithThinking enables extended thinking. Reasoning blocks are recorded on
// the trace, and temperature is forced to 1.0 as the API requires.
package claudeexecutor
