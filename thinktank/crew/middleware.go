/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package crew

import (
	"context"
	"time"

	"chainguard.dev/thinktank/thinktank/transcript"
	"github.com/chainguard-dev/clog"
)

// Call is one stage invocation as seen by middleware.
type Call struct {
	Role  Role
	Label string
	// Prompt is the rendered user prompt sent to the agent.
	Prompt  string
	Request *Request
}

// Handler runs one stage.
type Handler func(ctx context.Context, call *Call) (*StageResult, error)

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// Chain composes middleware. The first one listed is the outermost.
func Chain(mw ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}

// Transcript records each prompt and response in l.
func Transcript(l *transcript.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (*StageResult, error) {
			l.Log(call.Label+" (Prompt)", call.Prompt)
			res, err := next(ctx, call)
			if err != nil {
				return res, err
			}
			l.Log(call.Label+" (Response)", res.Content)
			return res, nil
		}
	}
}

// Logging writes a log line when each stage starts and ends.
func Logging() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (*StageResult, error) {
			log := clog.FromContext(ctx).With("role", call.Role)
			log.Infof("%s is thinking", call.Label)
			start := time.Now()

			res, err := next(ctx, call)
			if err != nil {
				log.With("error", err, "duration", time.Since(start)).Error("Stage failed")
				return res, err
			}
			log.With("duration", time.Since(start), "chars", len(res.Content)).Infof("%s finished", call.Label)
			return res, nil
		}
	}
}
