/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"chainguard.dev/thinktank/agents/agenttrace"
	"go.opentelemetry.io/otel/attribute"
)

// AttributeEnricher adds contextual attributes to the base set (model, tool)
// before a measurement is recorded.
type AttributeEnricher func(ctx context.Context, base []attribute.KeyValue) []attribute.KeyValue

// ExecutionContextEnricher labels measurements with the pipeline role and
// stage found on ctx.
func ExecutionContextEnricher(ctx context.Context, base []attribute.KeyValue) []attribute.KeyValue {
	return agenttrace.GetExecutionContext(ctx).EnrichAttributes(base)
}
