/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ExecutionContext identifies which think tank run and stage an agent
// execution belongs to.
type ExecutionContext struct {
	RunID string `json:"run_id,omitempty"` // one per pipeline run
	Topic string `json:"topic,omitempty"`
	Role  string `json:"role,omitempty"`  // e.g. "critical_analyst"
	Stage int    `json:"stage,omitempty"` // 1-based position in the pipeline
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// EnrichAttributes appends bounded metric labels. RunID and Topic are left
// to traces since every run would mint a new series.
func (e ExecutionContext) EnrichAttributes(base []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(base), len(base)+2)
	copy(attrs, base)
	if e.Role != "" {
		attrs = append(attrs, attribute.String("role", e.Role))
	}
	attrs = append(attrs, attribute.Int("stage", e.Stage))
	return attrs
}

func (e ExecutionContext) spanAttributes() []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if e.RunID != "" {
		attrs = append(attrs, attribute.String("run_id", e.RunID))
	}
	if e.Topic != "" {
		attrs = append(attrs, attribute.String("topic", e.Topic))
	}
	if e.Role != "" {
		attrs = append(attrs, attribute.String("role", e.Role), attribute.Int("stage", e.Stage))
	}
	return attrs
}

type executionContextKey struct{}

// WithExecutionContext stores ec on ctx.
func WithExecutionContext(ctx context.Context, ec ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey{}, ec)
}

// GetExecutionContext returns the ExecutionContext on ctx, or the zero value.
func GetExecutionContext(ctx context.Context) ExecutionContext {
	ec, _ := ctx.Value(executionContextKey{}).(ExecutionContext)
	return ec
}
