/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"testing"

	"chainguard.dev/thinktank/agents/agenttrace"
	"go.opentelemetry.io/otel/attribute"
)

func TestExecutionContextEnricher(t *testing.T) {
	ctx := agenttrace.WithExecutionContext(context.Background(), agenttrace.ExecutionContext{
		Role:  "synthesis_coordinator",
		Stage: 6,
	})
	got := ExecutionContextEnricher(ctx, []attribute.KeyValue{attribute.String("model", "m")})

	want := map[attribute.Key]string{
		"model": "m",
		"role":  "synthesis_coordinator",
		"stage": "6",
	}
	if len(got) != len(want) {
		t.Fatalf("attributes: got = %v, wanted %d entries", got, len(want))
	}
	for _, kv := range got {
		if w, ok := want[kv.Key]; !ok || kv.Value.Emit() != w {
			t.Errorf("attribute %s: got = %q, wanted = %q", kv.Key, kv.Value.Emit(), w)
		}
	}
}

func TestRecordDoesNotPanicWithoutEnricher(t *testing.T) {
	m := NewGenAI(MeterName)
	m.SetAttributeEnricher(nil)
	m.RecordTokens(context.Background(), "claude-sonnet-4-5", 10, 20)
	m.RecordToolCall(context.Background(), "claude-sonnet-4-5", "web_search")
}
