/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace records agent executions and their tool calls, backed by
OpenTelemetry spans.

Executors start a Trace per request and a ToolCall per tool invocation. When
the Trace completes it is handed to the Tracer installed on the context:

	ctx = agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{
		RunID: agenttrace.NewRunID(),
		Role:  "market_expert",
		Stage: 4,
	})
	ctx = agenttrace.WithTracer(ctx, agenttrace.ByCode(func(tr *agenttrace.Trace[*Result]) {
		log.Printf("%s used %d tools", tr.ExecContext.Role, len(tr.ToolCalls))
	}))

	trace := agenttrace.StartTrace[*Result](ctx, prompt)
	tc := trace.StartToolCall("call_1", "market_research", map[string]any{"query": "..."})
	tc.Complete(text, nil)
	trace.Complete(result, nil)

Without an installed tracer, traces are logged with clog at debug level.
*/
package agenttrace
